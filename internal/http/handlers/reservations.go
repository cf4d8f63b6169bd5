package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/domain"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/domain/models"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/http/middleware"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/repositories"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/services"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/utils"
)

type ReservationHandler struct {
	Reservations repositories.ReservationRepository
	Trips        repositories.TripRepository
}

func (h ReservationHandler) availability(c *gin.Context) services.AvailabilityService {
	return services.AvailabilityService{
		Trips:     h.Trips,
		RequestID: middleware.GetRequestID(c),
	}
}

type createReservationRequest struct {
	TripDetails   models.TripDetails `json:"tripDetails" binding:"required"`
	Passengers    []models.Passenger `json:"passengers"`
	ContactName   string             `json:"contactName"`
	ContactPhone  string             `json:"contactPhone"`
	ContactEmail  string             `json:"contactEmail"`
	Amount        float64            `json:"amount"`
	Advance       float64            `json:"advance"`
	PaymentMethod string             `json:"paymentMethod"`
	PaymentStatus string             `json:"paymentStatus"`
}

// POST /api/reservations
func (h ReservationHandler) Create(c *gin.Context) {
	var req createReservationRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	td := req.TripDetails
	if td.RecordID <= 0 || td.Seats <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "tripDetails", Msg: "recordId y seats son obligatorios"})
		return
	}

	trip, err := h.Trips.GetByID(td.RecordID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !trip.IsLegacyRow() {
		if _, _, err := models.ResolveSegment(trip, td.TripID); err != nil {
			RespondDomainError(c, err)
			return
		}
	}

	// seats come off the segment before the reservation row exists; a
	// conflict here (oversell) aborts the whole flow
	if err := h.availability(c).Adjust(td.RecordID, td.TripID, -td.Seats); err != nil {
		RespondDomainError(c, err)
		return
	}

	rawDetails, err := json.Marshal(td)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "no se pudo serializar tripDetails", Err: err})
		return
	}

	id, err := h.Reservations.Create(models.Reservation{
		TripDetails:   rawDetails,
		Passengers:    req.Passengers,
		ContactName:   req.ContactName,
		ContactPhone:  req.ContactPhone,
		ContactEmail:  req.ContactEmail,
		Amount:        req.Amount,
		Advance:       req.Advance,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: req.PaymentStatus,
		Status:        models.ReservationPending,
	})
	if err != nil {
		// hand the seats back; the reservation row never existed
		if relErr := h.availability(c).Adjust(td.RecordID, td.TripID, td.Seats); relErr != nil {
			utils.LogEvent(middleware.GetRequestID(c), "reservations", "release_failed",
				fmt.Sprintf("trip_id=%d seats=%d err=%v", td.RecordID, td.Seats, relErr))
		}
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GET /api/reservations?status=
func (h ReservationHandler) List(c *gin.Context) {
	reservations, err := h.Reservations.ListByStatus(c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": reservations, "total": len(reservations)})
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PUT /api/reservations/:id/status
func (h ReservationHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "id invalido", err)
		return
	}
	var req statusRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	res, err := h.Reservations.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !models.ValidStatusTransition(res.Status, req.Status) {
		RespondDomainError(c, domain.ValidationError{
			Field: "status",
			Msg:   fmt.Sprintf("transicion invalida: %s -> %s", res.Status, req.Status),
		})
		return
	}

	if err := h.Reservations.UpdateStatus(id, req.Status); err != nil {
		RespondDomainError(c, err)
		return
	}

	// cancellations restore inventory; a failed propagation never rolls
	// back the status change that already succeeded
	if req.Status == models.ReservationCanceled || req.Status == models.ReservationCanceledRefund {
		td := res.ParsedTripDetails()
		if err := h.availability(c).Adjust(td.RecordID, td.TripID, td.Seats); err != nil {
			utils.LogEvent(middleware.GetRequestID(c), "reservations", "restore_failed",
				fmt.Sprintf("reservation_id=%d trip_id=%d err=%v", id, td.RecordID, err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}

// PUT /api/reservations/:id/check records a boarding staff scan.
func (h ReservationHandler) Check(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "id invalido", err)
		return
	}

	checkedBy := middleware.CallerName(c)
	if checkedBy == "" {
		checkedBy = "checker"
	}

	if err := h.Reservations.MarkChecked(id, checkedBy); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "checked": true})
}

// DELETE /api/reservations/:id
func (h ReservationHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "id invalido", err)
		return
	}
	if err := h.Reservations.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

package models

type Vehicle struct {
	ID          int64  `json:"id"`
	CompanyID   string `json:"companyId"`
	Plates      string `json:"plates"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description,omitempty"`
}

// Summary is the short label shown on listings ("Brand Model - Plates").
func (v Vehicle) Summary() string {
	label := v.Brand
	if v.Model != "" {
		if label != "" {
			label += " "
		}
		label += v.Model
	}
	if v.Plates != "" {
		if label != "" {
			label += " - "
		}
		label += v.Plates
	}
	return label
}

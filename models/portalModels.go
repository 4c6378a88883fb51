package models

import "strings"

// Appointment mirrors the appointment service response. Appointments are
// read-only within a portal session.
type Appointment struct {
	AppointmentID    string `json:"appointment_id"`
	PatientID        string `json:"patient_id"`
	PatientFirstName string `json:"patient_first_name"`
	PatientLastName  string `json:"patient_last_name"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	Status           string `json:"status"`
}

// PatientName returns the concatenated patient name with surrounding
// whitespace removed.
func (a Appointment) PatientName() string {
	return joinName(a.PatientFirstName, a.PatientLastName)
}

// PatientProfile holds the optional demographic fields returned by the
// batch patient lookup. Fetched lazily and cached per session.
type PatientProfile struct {
	ID               string  `json:"id"`
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	Gender           string  `json:"gender"`
	PhoneNumber      string  `json:"phone_number"`
	HospitalID       string  `json:"hospital_id"`
	BirthDate        *string `json:"birth_date"`
	IDCardNumber     *string `json:"id_card_number"`
	Address          *string `json:"address"`
	Allergies        *string `json:"allergies"`
	EmergencyContact *string `json:"emergency_contact"`
	BloodType        *string `json:"blood_type"`
}

// PatientInfo is the patient summary embedded in an order.
type PatientInfo struct {
	PatientID   string `json:"patient_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Gender      string `json:"gender"`
	PhoneNumber string `json:"phone_number"`
}

// Order is a prescription request submitted by a patient, reviewed and
// approved or rejected by a doctor.
type Order struct {
	OrderID        string       `json:"order_id"`
	PatientID      string       `json:"patient_id"`
	PatientInfo    *PatientInfo `json:"patient_info,omitempty"`
	DoctorID       *string      `json:"doctor_id,omitempty"`
	TotalAmount    float64      `json:"total_amount"`
	Note           *string      `json:"note,omitempty"`
	SubmittedAt    *string      `json:"submitted_at,omitempty"`
	ReviewedAt     *string      `json:"reviewed_at,omitempty"`
	Status         string       `json:"status"`
	DeliveryStatus *string      `json:"delivery_status,omitempty"`
	DeliveryAt     *string      `json:"delivery_at,omitempty"`
	CreatedAt      string       `json:"created_at"`
	UpdatedAt      string       `json:"updated_at"`
	OrderItems     []OrderItem  `json:"order_items"`
}

// PatientName returns the embedded patient summary name, or a fallback
// label when the summary is missing.
func (o Order) PatientName() string {
	if o.PatientInfo == nil {
		return "Patient name unavailable"
	}
	if full := joinName(o.PatientInfo.FirstName, o.PatientInfo.LastName); full != "" {
		return full
	}
	return "Patient name unavailable"
}

// OrderItem is one medicine + quantity line within an order.
type OrderItem struct {
	MedicineID   string  `json:"medicine_id"`
	MedicineName string  `json:"medicine_name"`
	Quantity     float64 `json:"quantity"`
}

// OrderList is the envelope returned by the order service.
type OrderList struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
}

// Medicine is a read-only catalog entry, fetched once per session.
type Medicine struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Stock     float64 `json:"stock"`
	Unit      string  `json:"unit"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// MedicineList is the envelope returned by the medicine service.
type MedicineList struct {
	Medicines []Medicine `json:"medicines"`
	Total     int        `json:"total"`
}

// DoctorShift is a recurring weekly availability window.
type DoctorShift struct {
	ShiftID     string `json:"shift_id"`
	Weekday     string `json:"weekday"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	DurationMin int    `json:"duration_min"`
}

// CreateShiftRequest is the payload sent to the shift creation endpoint.
type CreateShiftRequest struct {
	Weekday     string `json:"weekday"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	DurationMin int    `json:"duration_min"`
}

// DeleteShiftRequest identifies the shift to remove.
type DeleteShiftRequest struct {
	ShiftID string `json:"shift_id"`
}

// LoginRequest carries doctor credentials to the user service.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the user service reply. The backend also sets its auth
// cookie on this response; the token here is informational.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	DoctorID    string `json:"doctorId,omitempty"`
	DoctorName  string `json:"doctorName,omitempty"`
	Email       string `json:"email,omitempty"`
}

// UpdateOrderRequest is the payload for the order update endpoint. Only
// medicine identifiers and numeric quantities ever leave the portal.
type UpdateOrderRequest struct {
	OrderID    string            `json:"order_id"`
	OrderItems []UpdateOrderItem `json:"order_items"`
}

// UpdateOrderItem is one saved line of an order update.
type UpdateOrderItem struct {
	MedicineID string  `json:"medicine_id"`
	Quantity   float64 `json:"quantity"`
}

func joinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

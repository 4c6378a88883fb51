package backend

import (
	"context"
	"net/http"

	"DoctorPortal/models"

	"github.com/pkg/errors"
)

// Login authenticates doctor credentials and captures the auth cookies the
// backend sets on the reply. Those cookies carry authentication for every
// later call in the session.
func (c *Client) Login(ctx context.Context, creds models.LoginRequest) (*models.LoginResponse, []models.SavedCookie, error) {
	payload, err := jsonBody(creds)
	if err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/user/v1/doctor/login", payload)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to build login request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		return nil, nil, errors.Wrap(err, "login request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, nil, ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		return nil, nil, &APIError{StatusCode: resp.StatusCode, Message: extractMessage(resp.Body)}
	}

	var login models.LoginResponse
	if err := decodeJSON(resp.Body, &login); err != nil {
		return nil, nil, err
	}

	cookies := make([]models.SavedCookie, 0, len(resp.Cookies()))
	for _, cookie := range resp.Cookies() {
		cookies = append(cookies, models.SavedCookie{Name: cookie.Name, Value: cookie.Value})
	}
	return &login, cookies, nil
}

// Appointments lists the doctor's appointments.
func (c *Client) Appointments(ctx context.Context, sess *models.Session) ([]models.Appointment, error) {
	var appointments []models.Appointment
	if err := c.do(ctx, http.MethodGet, "/appointment/v1/doctor", sess, nil, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// PatientProfiles resolves a batch of patient identifiers to profiles.
func (c *Client) PatientProfiles(ctx context.Context, sess *models.Session, patientIDs []string) ([]models.PatientProfile, error) {
	body := struct {
		PatientIDs []string `json:"patient_ids"`
	}{PatientIDs: patientIDs}

	var profiles []models.PatientProfile
	if err := c.do(ctx, http.MethodPost, "/user/v1/patients", sess, body, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// DoctorOrders lists the pending and active orders awaiting review.
func (c *Client) DoctorOrders(ctx context.Context, sess *models.Session) (*models.OrderList, error) {
	var list models.OrderList
	if err := c.do(ctx, http.MethodGet, "/order/v1/orders/doctor", sess, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// DoctorOrderHistory lists orders already approved or rejected.
func (c *Client) DoctorOrderHistory(ctx context.Context, sess *models.Session) (*models.OrderList, error) {
	var list models.OrderList
	if err := c.do(ctx, http.MethodGet, "/order/v1/orders/doctor/history", sess, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// UpdateOrder replaces an order's line items.
func (c *Client) UpdateOrder(ctx context.Context, sess *models.Session, update models.UpdateOrderRequest) error {
	return c.do(ctx, http.MethodPut, "/order/v1/orders", sess, update, nil)
}

// ConfirmOrder approves an order.
func (c *Client) ConfirmOrder(ctx context.Context, sess *models.Session, orderID string) error {
	return c.do(ctx, http.MethodPost, "/order/v1/orders/confirm", sess, orderPayload{OrderID: orderID}, nil)
}

// RejectOrder rejects an order.
func (c *Client) RejectOrder(ctx context.Context, sess *models.Session, orderID string) error {
	return c.do(ctx, http.MethodPost, "/order/v1/orders/reject", sess, orderPayload{OrderID: orderID}, nil)
}

// Medicines fetches the read-only medicine catalog.
func (c *Client) Medicines(ctx context.Context, sess *models.Session) (*models.MedicineList, error) {
	var list models.MedicineList
	if err := c.do(ctx, http.MethodGet, "/medicine/v1/medicines", sess, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Shifts lists the doctor's active weekly shifts.
func (c *Client) Shifts(ctx context.Context, sess *models.Session) ([]models.DoctorShift, error) {
	var shifts []models.DoctorShift
	if err := c.do(ctx, http.MethodGet, "/appointment/v1/doctor/shift", sess, nil, &shifts); err != nil {
		return nil, err
	}
	return shifts, nil
}

// CreateShift registers a new weekly shift.
func (c *Client) CreateShift(ctx context.Context, sess *models.Session, req models.CreateShiftRequest) (*models.DoctorShift, error) {
	var shift models.DoctorShift
	if err := c.do(ctx, http.MethodPost, "/appointment/v1/doctor/shift", sess, req, &shift); err != nil {
		return nil, err
	}
	return &shift, nil
}

// DeleteShift removes a shift by identifier.
func (c *Client) DeleteShift(ctx context.Context, sess *models.Session, shiftID string) error {
	return c.do(ctx, http.MethodDelete, "/appointment/v1/doctor/shift", sess, models.DeleteShiftRequest{ShiftID: shiftID}, nil)
}

type orderPayload struct {
	OrderID string `json:"order_id"`
}

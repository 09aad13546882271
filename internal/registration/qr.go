package registration

import (
	"encoding/json"

	qrcode "github.com/skip2/go-qrcode"
)

// ticketPayload is what the entrance scanner reads back.
type ticketPayload struct {
	RegistrationID string `json:"registration_id"`
	EventID        string `json:"event_id"`
	UserID         string `json:"user_id"`
}

// TicketQR renders the registration ticket as a QR code PNG.
func TicketQR(reg Registration) ([]byte, error) {
	payload, err := json.Marshal(ticketPayload{
		RegistrationID: reg.ID,
		EventID:        reg.EventID,
		UserID:         reg.UserID,
	})
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(string(payload), qrcode.Medium, 256)
}

package ticket

import "time"

// Ticket is one purchased entry, keyed by its code (the QR payload).
type Ticket struct {
	Code        string    `json:"codigo"`
	EventID     string    `json:"eventid"`
	Type        string    `json:"tipo"`
	HolderID    string    `json:"holder_id"`
	PurchasedAt time.Time `json:"purchased_at"`
}

// EventGroup summarizes a user's tickets for one event, for the
// "Meus Ingressos" list.
type EventGroup struct {
	EventID   string `json:"eventid"`
	EventName string `json:"nomeevento"`
	ImageURL  string `json:"imageurl"`
	EventDate string `json:"dataevento,omitempty"`
	Location  string `json:"local,omitempty"`
	Quantity  int    `json:"quantidadeTotal"`
}

// Detail is one ticket plus its rendered QR code for the digital-ticket
// screen.
type Detail struct {
	Ticket
	EventName    string `json:"nomeevento"`
	QRCodeBase64 string `json:"qr_code_base64"`
}

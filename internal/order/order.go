// Package order holds the order entity and its fulfillment state
// machine. Orders are immutable after creation except for forward-only
// fulfillment advancement.
package order

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"aigc-c2m-studio/internal/catalog"
)

// Status is one stage of the fulfillment pipeline.
type Status string

const (
	StatusPending      Status = "PENDING"
	StatusProducing    Status = "PRODUCING"
	StatusQualityCheck Status = "QUALITY_CHECK"
	StatusShipping     Status = "SHIPPING"
	StatusTransit      Status = "TRANSIT"
	StatusDelivered    Status = "DELIVERED"
)

// transitions is deliberately a table rather than hard-coded branches:
// only PRODUCING is reachable today, the later stages are wired for
// future advancement triggers.
var transitions = map[Status]Status{
	StatusPending:      StatusProducing,
	StatusProducing:    StatusQualityCheck,
	StatusQualityCheck: StatusShipping,
	StatusShipping:     StatusTransit,
	StatusTransit:      StatusDelivered,
}

var ErrFinalStatus = errors.New("order already delivered")

// Update is one timestamped line of the fulfillment log.
type Update struct {
	Time time.Time `json:"time"`
	Msg  string    `json:"msg"`
}

// FulfillmentState tracks order progress: a monotonically non-decreasing
// step counter and an append-only chronological log.
type FulfillmentState struct {
	Status  Status   `json:"status"`
	Step    int      `json:"step"`
	Updates []Update `json:"updates"`
}

const receivedMsg = "Factory has received design data and is initializing the production environment"

// NewFulfillment is the state every fresh order starts in.
func NewFulfillment(now time.Time) FulfillmentState {
	return FulfillmentState{
		Status:  StatusProducing,
		Step:    1,
		Updates: []Update{{Time: now, Msg: receivedMsg}},
	}
}

// Advance moves the state one stage forward and appends a log entry.
// There is no backward or cancellation transition.
func (f *FulfillmentState) Advance(now time.Time) error {
	next, ok := transitions[f.Status]
	if !ok {
		return ErrFinalStatus
	}
	f.Status = next
	f.Step++
	f.Updates = append(f.Updates, Update{Time: now, Msg: fmt.Sprintf("Order moved to stage %s", next)})
	return nil
}

// Order is an immutable snapshot of a configured design at placement
// time.
type Order struct {
	ID              string           `json:"id"`
	Category        catalog.Category `json:"category"`
	ProductName     string           `json:"product_name"`
	MaterialID      string           `json:"material_id"`
	SizeOrModel     string           `json:"size_or_model"`
	ColorID         string           `json:"color_id,omitempty"`
	UnitPrice       int              `json:"unit_price"`
	LeadTime        string           `json:"lead_time"`
	Image           string           `json:"image"`
	SourceArtworkID string           `json:"source_artwork_id,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	Fulfillment     FulfillmentState `json:"fulfillment"`
}

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewID returns a fresh order identifier: the C2M program marker plus
// nine random alphanumerics, enough to make collisions negligible.
func NewID() string {
	return "C2M-" + RandomCode(9)
}

// RandomCode returns n random uppercase alphanumeric characters.
func RandomCode(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("order: read random: %v", err))
	}
	for i, b := range buf {
		buf[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return string(buf)
}

package tickets

import (
	"strings"
	"testing"

	"comedor-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestTransitionAllowed(t *testing.T) {
	cases := []struct {
		from, to models.TicketStatus
		want     bool
	}{
		{models.TicketOpen, models.TicketInProgress, true},
		{models.TicketOpen, models.TicketResolved, true},
		{models.TicketOpen, models.TicketClosed, true},
		{models.TicketInProgress, models.TicketResolved, true},
		{models.TicketInProgress, models.TicketClosed, true},
		{models.TicketInProgress, models.TicketOpen, false},
		{models.TicketResolved, models.TicketClosed, true},
		{models.TicketResolved, models.TicketInProgress, true}, // reapertura
		{models.TicketResolved, models.TicketOpen, false},
		{models.TicketClosed, models.TicketOpen, false},
		{models.TicketClosed, models.TicketResolved, false},
	}

	for _, tc := range cases {
		got := transitionAllowed(tc.from, tc.to)
		assert.Equal(t, tc.want, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestNewFolio(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		folio := NewFolio()
		assert.True(t, strings.HasPrefix(folio, "TK-"))
		assert.Len(t, folio, 11)
		assert.False(t, seen[folio], "folio repetido: %s", folio)
		seen[folio] = true
	}
}

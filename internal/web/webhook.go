package web

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/oppbot/oppbot/internal/metrics"
	"github.com/oppbot/oppbot/internal/store"
)

// twiml is the Twilio messaging response envelope.
type twiml struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

const welcomeMessage = "Welcome to OpportunityBot! Send me any opportunity text " +
	"and I'll extract the key details, score it, and save it for you."

// handleWhatsApp receives Twilio form posts and replies with TwiML.
// POST /webhook/whatsapp
func (s *Server) handleWhatsApp(w http.ResponseWriter, r *http.Request) {
	metrics.IncrWebhookRequests()

	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}
	from := r.PostFormValue("From")
	body := strings.TrimSpace(r.PostFormValue("Body"))

	if body == "" {
		writeTwiML(w, welcomeMessage)
		return
	}

	slog.Info("webhook: whatsapp message", slog.String("from", from), slog.Int("len", len(body)))

	analysis := s.Analyze(r.Context(), body)
	opp := store.New(body, "whatsapp", analysis)

	id, err := s.store.Save(r.Context(), opp)
	if err != nil {
		slog.Error("webhook: save failed", slog.Any("error", err))
		writeTwiML(w, "Sorry, something went wrong saving your opportunity. Please try again.")
		return
	}
	opp.ID = id
	s.NotifyHighPriority(opp)

	writeTwiML(w, confirmation(opp))
}

// confirmation builds the reply summarizing what was extracted.
func confirmation(opp store.Opportunity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Opportunity saved! (#%d)\n", opp.ID)
	fmt.Fprintf(&b, "Title: %s\n", opp.Title)
	fmt.Fprintf(&b, "Category: %s\n", opp.Category)
	fmt.Fprintf(&b, "Priority: %.1f/10", opp.PriorityScore)
	if opp.Deadline != "" {
		fmt.Fprintf(&b, "\nDeadline: %s", opp.Deadline)
	}
	if opp.Compensation != "" {
		fmt.Fprintf(&b, "\nCompensation: %s", opp.Compensation)
	}
	if opp.Location != "" {
		fmt.Fprintf(&b, "\nLocation: %s", opp.Location)
	}
	return b.String()
}

func writeTwiML(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/xml")
	fmt.Fprint(w, xml.Header)
	if err := xml.NewEncoder(w).Encode(twiml{Message: message}); err != nil {
		slog.Error("webhook: encode twiml", slog.Any("error", err))
	}
}

package complaints

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cyvox/console/internal/cyvox"
	"github.com/cyvox/console/internal/testutil"
	"go.uber.org/zap"
)

func TestBuildVM_StatsAndCards(t *testing.T) {
	srv := testutil.UpstreamStub(t, map[string]string{
		"/api/complaint/get-all": `{"All complaints":[
			{"complainSubject":"Robocall scam","username":"carol","moneyScammed":1200,
			 "createdAt":"2025-04-01T00:00:00Z",
			 "incidentDescription":"They called <script>alert(1)</script> twice.",
			 "city":"Pune","district":"Pune","state":"Maharashtra","pincode":"411001",
			 "userConversationAudioUrl":"https://cdn.example/rec.mp3"},
			{"subject":"Voicemail phishing","moneyScammed":300.5}
		]}`,
	})

	h := NewHandler(cyvox.New(srv.URL, srv.Client(), zap.NewNop()), zap.NewNop())
	vm := h.buildVM(httptest.NewRequest("GET", "/complaints", nil))

	if vm.Error != "" {
		t.Fatalf("unexpected error: %q", vm.Error)
	}
	if vm.TotalComplaints != 2 {
		t.Errorf("TotalComplaints: got %d", vm.TotalComplaints)
	}
	if vm.TotalLoss != "$1,500.50" {
		t.Errorf("TotalLoss: got %q", vm.TotalLoss)
	}

	first := vm.Cards[0]
	if first.Subject != "Robocall scam" || first.User != "carol" {
		t.Errorf("card: %+v", first)
	}
	if first.Loss != "$1,200.00" {
		t.Errorf("Loss: got %q", first.Loss)
	}
	if first.Location != "Pune, Pune, Maharashtra, 411001" {
		t.Errorf("Location: got %q", first.Location)
	}
	if first.AudioURL != "https://cdn.example/rec.mp3" {
		t.Errorf("AudioURL: got %q", first.AudioURL)
	}
	if strings.Contains(string(first.Description), "<script>") {
		t.Errorf("description not sanitized: %q", first.Description)
	}
	if !strings.Contains(string(first.Description), "twice") {
		t.Errorf("description text lost: %q", first.Description)
	}
	if len(first.Fields) == 0 {
		t.Error("expected rendered record fields")
	}

	// A record carrying only a bare "subject" still gets one.
	if vm.Cards[1].Subject != "Voicemail phishing" {
		t.Errorf("fallback subject: got %q", vm.Cards[1].Subject)
	}
}

func TestNewCard_DocumentedFieldNames(t *testing.T) {
	rec := cyvox.Record(`{
		"complainSubject":"Voice scam call",
		"incidentDescription":"Caller impersonated a bank officer.",
		"scammerAudioUrl":"https://cdn.example/scammer.mp3",
		"streetAddress":"12 MG Road","city":"Indore"
	}`)

	card := newCard(rec)
	if card.Subject != "Voice scam call" {
		t.Errorf("Subject: got %q", card.Subject)
	}
	if !strings.Contains(string(card.Description), "bank officer") {
		t.Errorf("Description: got %q", card.Description)
	}
	if card.AudioURL != "https://cdn.example/scammer.mp3" {
		t.Errorf("AudioURL: got %q", card.AudioURL)
	}
	if card.Location != "12 MG Road, Indore" {
		t.Errorf("Location: got %q", card.Location)
	}
}

func TestBuildVM_UntitledFallback(t *testing.T) {
	srv := testutil.UpstreamStub(t, map[string]string{
		"/api/complaint/get-all": `{"All complaints":[{"moneyScammed":10}]}`,
	})

	h := NewHandler(cyvox.New(srv.URL, srv.Client(), zap.NewNop()), zap.NewNop())
	vm := h.buildVM(httptest.NewRequest("GET", "/complaints", nil))

	if vm.Cards[0].Subject != "Untitled complaint" {
		t.Errorf("got %q", vm.Cards[0].Subject)
	}
}

func TestBuildVM_UpstreamError(t *testing.T) {
	srv := testutil.FailingUpstream(t, 502)

	h := NewHandler(cyvox.New(srv.URL, srv.Client(), zap.NewNop()), zap.NewNop())
	vm := h.buildVM(httptest.NewRequest("GET", "/complaints", nil))

	if vm.Error != "request failed with status code 502" {
		t.Errorf("Error: got %q", vm.Error)
	}
	if len(vm.Cards) != 0 {
		t.Error("failed fetch should yield no cards")
	}
}

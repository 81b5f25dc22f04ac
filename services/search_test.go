package services

import (
	"testing"

	"estate-crm/models"
)

func sampleClients() []*models.Client {
	return []*models.Client{
		{FullName: "Ayşe Yılmaz", Phone: "0 (532) 123-45-67"},
		{FullName: "Mehmet Demir", Phone: "0533 987 65 43"},
		{FullName: "Fatma Kaya", Phone: ""},
	}
}

func TestSearchClientsByName(t *testing.T) {
	got := SearchClients(sampleClients(), "mehmet")
	if len(got) != 1 || got[0].FullName != "Mehmet Demir" {
		t.Errorf("got %v; want Mehmet Demir", got)
	}
}

func TestSearchClientsByFormattedPhone(t *testing.T) {
	// The stored number is formatted differently than the search term.
	got := SearchClients(sampleClients(), "532 123 45")
	if len(got) != 1 || got[0].FullName != "Ayşe Yılmaz" {
		t.Errorf("got %v; want Ayşe Yılmaz", got)
	}
}

func TestSearchClientsNoMatch(t *testing.T) {
	if got := SearchClients(sampleClients(), "zeynep"); len(got) != 0 {
		t.Errorf("got %v; want none", got)
	}
}

func TestSearchClientsEmptyTermMatchesNothing(t *testing.T) {
	if got := SearchClients(sampleClients(), "   "); len(got) != 0 {
		t.Errorf("got %v; want none", got)
	}
}

func TestWhatsAppLink(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"0 (532) 123-45-67", "https://wa.me/905321234567"},
		{"532 123 45 67", "https://wa.me/905321234567"},
		{"+90 532 123 45 67", "https://wa.me/905321234567"},
		{"yok", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := WhatsAppLink(tt.raw); got != tt.want {
			t.Errorf("WhatsAppLink(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

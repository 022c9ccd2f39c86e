package commands

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"
)

const (
	whatsappWebURL = "https://web.whatsapp.com"
	// sendConfirmDelay leaves time for the web client to load the prefilled
	// message before the confirm keypress fires.
	sendConfirmDelay = 15 * time.Second
)

var messageKeywords = []string{"message", "text", "tell", "say"}

// WhatsAppIntent reports whether the input should go to the WhatsApp
// handler: the literal keyword, or a send+message combination.
func WhatsAppIntent(input string) bool {
	lower := strings.ToLower(input)
	if strings.Contains(lower, "whatsapp") {
		return true
	}
	return strings.Contains(lower, "message") && strings.Contains(lower, "send")
}

// WhatsApp resolves a contact and message from the input and drives the web
// client through a deep link. An open-only intent just opens the client.
func (h *Handlers) WhatsApp(ctx context.Context, input string) string {
	lower := strings.ToLower(input)
	name, phone, found := h.Contacts.Resolve(input)
	message := ""
	if found {
		message = ExtractMessage(input, name)
	}

	if !found && message == "" {
		if strings.Contains(lower, "open") {
			if err := h.Auto.OpenURL(whatsappWebURL); err != nil {
				log.Printf("whatsapp open failed: %v", err)
				return "I had trouble opening WhatsApp."
			}
			return "Opening WhatsApp Web..."
		}
		return "Who should I message? I don't have that contact."
	}

	if message == "" {
		return fmt.Sprintf("What should I tell %s?", name)
	}

	link := fmt.Sprintf("%s/send?phone=%s&text=%s", whatsappWebURL, digitsOnly(phone), url.QueryEscape(message))
	if err := h.Auto.OpenURL(link); err != nil {
		log.Printf("whatsapp deep link failed: %v", err)
		return "I had trouble opening WhatsApp."
	}
	// The web client needs a confirm keypress once the chat loads.
	h.Auto.PressKeyAfter(ctx, sendConfirmDelay, "Return")
	return fmt.Sprintf("Sending your message to %s...", name)
}

// ExtractMessage pulls the message body out of the input: the text after the
// first message keyword, minus connective words and the contact name.
func ExtractMessage(input, contact string) string {
	lower := strings.ToLower(input)
	for _, kw := range messageKeywords {
		idx := strings.Index(lower, kw)
		if idx < 0 {
			continue
		}
		if rest := trimConnectives(input[idx+len(kw):], contact); rest != "" {
			return rest
		}
	}
	return ""
}

func trimConnectives(s, contact string) string {
	skip := map[string]bool{"to": true, "that": true, "saying": true, "ing": true, "a": true, "on": true, "whatsapp": true}
	for _, tok := range strings.Fields(strings.ToLower(contact)) {
		skip[tok] = true
	}
	fields := strings.Fields(s)
	i := 0
	for i < len(fields) && skip[strings.ToLower(strings.Trim(fields[i], ",.:"))] {
		i++
	}
	return strings.Join(fields[i:], " ")
}

func digitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

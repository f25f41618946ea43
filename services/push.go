package services

import (
	"log"

	expo "github.com/oliveroneill/exponent-server-sdk-golang/sdk"
)

// Expo caps push batches at 100 messages per request.
const pushChunkSize = 100

// PushService fans a notification out to registered device tokens via the
// Expo push gateway.
type PushService struct {
	client *expo.PushClient
}

func NewPushService() *PushService {
	return &PushService{client: expo.NewPushClient(nil)}
}

// PushResult reports how many messages were attempted and how many tickets
// the gateway issued. It says nothing about per-device delivery.
type PushResult struct {
	Sent    int `json:"sent"`
	Tickets int `json:"tickets"`
}

// Broadcast sends title/body to every syntactically valid token. Chunks are
// sent independently: a failed chunk is logged and the rest still go out.
func (p *PushService) Broadcast(title, body string, data map[string]string, tokens []string) PushResult {
	messages := []expo.PushMessage{}
	for _, t := range tokens {
		pushToken, err := expo.NewExponentPushToken(t)
		if err != nil {
			// Not an Expo token; skip it.
			continue
		}
		messages = append(messages, expo.PushMessage{
			To:       []expo.ExponentPushToken{pushToken},
			Title:    title,
			Body:     body,
			Data:     data,
			Sound:    "default",
			Priority: expo.DefaultPriority,
		})
	}

	result := PushResult{Sent: len(messages)}
	for _, chunk := range chunkMessages(messages, pushChunkSize) {
		responses, err := p.client.PublishMultiple(chunk)
		if err != nil {
			log.Printf("push: chunk of %d failed: %v", len(chunk), err)
			continue
		}
		result.Tickets += len(responses)
	}
	return result
}

func chunkMessages(messages []expo.PushMessage, size int) [][]expo.PushMessage {
	chunks := [][]expo.PushMessage{}
	for len(messages) > size {
		chunks = append(chunks, messages[:size])
		messages = messages[size:]
	}
	if len(messages) > 0 {
		chunks = append(chunks, messages)
	}
	return chunks
}

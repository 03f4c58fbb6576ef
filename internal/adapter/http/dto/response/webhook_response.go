package response

// WebhookAckResponse acknowledges a processed webhook delivery. The gateway
// only looks at the status code; success and event are kept for log
// correlation on the gateway dashboard.
type WebhookAckResponse struct {
	Success bool   `json:"success"`
	Event   string `json:"event"`
}

func NewWebhookAck(event string) WebhookAckResponse {
	return WebhookAckResponse{Success: true, Event: event}
}

package dto

// WebhookRequest representa a mensagem recebida do provedor de WhatsApp
// (formulário no formato do Twilio)
type WebhookRequest struct {
	From string `form:"From" binding:"required"`
	Body string `form:"Body" binding:"required"`
}

// ChatRequest representa uma mensagem enviada pelo endpoint JSON de chat
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse representa a resposta do processamento de uma mensagem
type ChatResponse struct {
	Success     bool                   `json:"success"`
	Message     string                 `json:"message"`
	Action      string                 `json:"action,omitempty"`
	Data        map[string]interface{} `json:"data,omitempty"`
	OperationID string                 `json:"operation_id,omitempty"`
}

package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"revivecare/internal/models"
	"revivecare/internal/openai"
	"revivecare/internal/repository"

	"github.com/gin-gonic/gin"
)

const (
	chatContextMessages = 10
	chatHistoryLimit    = 50
	assistantTimeout    = 45 * time.Second
)

// Assistant produces the AI side of the recovery chat.
type Assistant interface {
	GenerateReply(ctx context.Context, history []models.ChatMessage, message, language string) (*openai.AssistantReply, openai.TokenUsage, error)
}

// Notifier tells a doctor about a serious message from one of their patients.
type Notifier interface {
	NotifySeriousMessage(doctor *models.Doctor, patient *models.Patient, message *models.ChatMessage) error
}

type ChatController struct {
	chatRepo    repository.ChatMessageRepository
	patientRepo repository.PatientRepository
	assistant   Assistant
	notifier    Notifier
}

// NewChatController wires the chatbot. assistant and notifier may be nil:
// without an assistant messages are stored but not answered.
func NewChatController(chatRepo repository.ChatMessageRepository, patientRepo repository.PatientRepository, assistant Assistant, notifier Notifier) *ChatController {
	return &ChatController{
		chatRepo:    chatRepo,
		patientRepo: patientRepo,
		assistant:   assistant,
		notifier:    notifier,
	}
}

type SendMessageRequest struct {
	Message  string `json:"message" binding:"required,max=2000"`
	Language string `json:"language" binding:"omitempty,chat_language"`
}

// SendMessage godoc
// @Summary Send a chatbot message
// @Description Store a patient message, generate the assistant reply and alert the doctor when the message is serious
// @Tags chatbot
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param message body controllers.SendMessageRequest true "Chat message"
// @Success 200 {object} map[string]interface{} "Reply generated successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 401 {object} map[string]interface{} "Unauthorized access"
// @Failure 502 {object} map[string]interface{} "Assistant is unavailable"
// @Failure 503 {object} map[string]interface{} "Assistant is not configured"
// @Router /patient/chatbot/send [post]
func (cc *ChatController) SendMessage(c *gin.Context) {
	patientID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	text := strings.TrimSpace(req.Message)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Message is required",
			"error":   "message must not be blank",
		})
		return
	}
	language := req.Language
	if language == "" {
		language = models.LanguageEnglish
	}

	patient, err := cc.patientRepo.FindByID(patientID)
	if err != nil {
		repositoryError(c, err, "Patient not found", "Failed to retrieve patient")
		return
	}

	history, err := cc.chatRepo.FindAllByPatientID(patientID, chatContextMessages)
	if err != nil {
		repositoryError(c, err, "", "Failed to retrieve chat history")
		return
	}

	patientMessage := models.ChatMessage{
		PatientID: patientID,
		Sender:    models.SenderPatient,
		Message:   text,
		Language:  language,
		Timestamp: time.Now(),
	}
	if err := cc.chatRepo.Create(&patientMessage); err != nil {
		repositoryError(c, err, "", "Failed to save message")
		return
	}

	if cc.assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "Assistant is not configured",
			"error":   "Your message was saved but no reply is available",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), assistantTimeout)
	defer cancel()

	reply, usage, err := cc.assistant.GenerateReply(ctx, history, text, language)
	if err != nil {
		log.Printf("Assistant failed for patient %d: %v", patientID, err)
		c.JSON(http.StatusBadGateway, gin.H{
			"status":  "error",
			"message": "Assistant is unavailable",
			"error":   err.Error(),
		})
		return
	}
	log.Printf("Assistant replied to patient %d using %d tokens", patientID, usage.TotalTokens)

	aiMessage := models.ChatMessage{
		PatientID:        patientID,
		Sender:           models.SenderAI,
		Message:          reply.Reply,
		Language:         language,
		SeriousnessScore: reply.SeriousnessScore,
		Timestamp:        time.Now(),
	}
	if err := cc.chatRepo.Create(&aiMessage); err != nil {
		repositoryError(c, err, "", "Failed to save reply")
		return
	}

	if aiMessage.IsSerious() {
		cc.alertDoctor(patient, &aiMessage)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Reply generated successfully",
		"data": gin.H{
			"response":          aiMessage.Message,
			"seriousness_score": aiMessage.SeriousnessScore,
			"is_serious":        aiMessage.IsSerious(),
			"patient_message":   patientMessage,
			"ai_message":        aiMessage,
		},
	})
}

// alertDoctor never fails the request; mail problems are only logged.
func (cc *ChatController) alertDoctor(patient *models.Patient, message *models.ChatMessage) {
	if cc.notifier == nil || patient.AssignedDoctor == nil {
		return
	}
	if err := cc.notifier.NotifySeriousMessage(patient.AssignedDoctor, patient, message); err != nil {
		log.Printf("Failed to alert doctor %d about patient %d: %v", patient.AssignedDoctor.ID, patient.ID, err)
	}
}

// GetHistory godoc
// @Summary Get chat history
// @Description Retrieve the chatbot history of the authenticated patient in chronological order
// @Tags chatbot
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of messages"
// @Success 200 {object} map[string]interface{} "Chat history retrieved successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized access"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve chat history"
// @Router /patient/chatbot/history [get]
func (cc *ChatController) GetHistory(c *gin.Context) {
	patientID, ok := currentUserID(c)
	if !ok {
		return
	}

	messages, err := cc.chatRepo.FindAllByPatientID(patientID, queryLimit(c, chatHistoryLimit))
	if err != nil {
		repositoryError(c, err, "", "Failed to retrieve chat history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Chat history retrieved successfully",
		"data":    messages,
	})
}

// ClearHistory godoc
// @Summary Clear chat history
// @Description Delete the chatbot history of the authenticated patient
// @Tags chatbot
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Chat history cleared successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized access"
// @Failure 500 {object} map[string]interface{} "Failed to clear chat history"
// @Router /patient/chatbot/history [delete]
func (cc *ChatController) ClearHistory(c *gin.Context) {
	patientID, ok := currentUserID(c)
	if !ok {
		return
	}

	deleted, err := cc.chatRepo.DeleteByPatientID(patientID)
	if err != nil {
		repositoryError(c, err, "", "Failed to clear chat history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Chat history cleared successfully",
		"data":    gin.H{"deleted": deleted},
	})
}

package notifier

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	config "github.com/ksudea/CT-ecommerce-api/configs"
	"github.com/ksudea/CT-ecommerce-api/internal/models"
)

type SMSResponse struct {
	SMSMessageData struct {
		Message    string `json:"Message"`
		Recipients []struct {
			StatusCode int    `json:"statusCode"`
			Number     string `json:"number"`
			Cost       string `json:"cost"`
			Status     string `json:"status"`
			MessageID  string `json:"messageId"`
		} `json:"Recipients"`
	} `json:"SMSMessageData"`
}

// SMSNotifier sends order confirmations through the Africa's Talking SMS API.
type SMSNotifier struct {
	cfg config.Config
}

func NewSMSNotifier(cfg *config.Config) *SMSNotifier {
	return &SMSNotifier{cfg: *cfg}
}

func (n *SMSNotifier) OrderPlaced(customer *models.Customer, order *models.Order, total float64) error {
	message := fmt.Sprintf(
		"Your order #%d has been placed! Total: KES %.2f. Expected delivery: %s. Thank you for shopping with us!",
		order.ID, total, order.ExpectedDelivery.Format("2006-01-02"),
	)

	data := url.Values{}
	data.Set("username", n.cfg.SMS.Username)
	data.Set("to", customer.Phone)
	data.Set("message", message)
	data.Set("from", n.cfg.SMS.SenderID)

	client := &http.Client{}
	req, err := http.NewRequest("POST", n.cfg.SMS.URL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create SMS request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apikey", n.cfg.SMS.APIKey)

	resp, err := client.Do(req)
	if err != nil {
		log.Printf("SMS send failed to %s for order %d: %v", customer.Phone, order.ID, err)
		return fmt.Errorf("SMS send failed: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		var smsResp SMSResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&smsResp); decodeErr == nil {
			log.Printf("SMS API returned error for %s (order %d): Status %d, Message: %s", customer.Phone, order.ID, resp.StatusCode, smsResp.SMSMessageData.Message)
		} else {
			log.Printf("SMS API returned non-success status %d for %s (order %d) and failed to decode response: %v", resp.StatusCode, customer.Phone, order.ID, decodeErr)
		}
		return fmt.Errorf("SMS API returned non-success status: %d", resp.StatusCode)
	}

	var smsResp SMSResponse
	if err := json.NewDecoder(resp.Body).Decode(&smsResp); err != nil {
		log.Printf("Failed to decode SMS response for %s (order %d): %v", customer.Phone, order.ID, err)
		return fmt.Errorf("failed to decode SMS response: %w", err)
	}

	log.Printf("SMS sent successfully to %s for order %d. Message: %s", customer.Phone, order.ID, smsResp.SMSMessageData.Message)
	return nil
}

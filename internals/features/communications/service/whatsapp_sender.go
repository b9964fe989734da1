package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bytedance/sonic"

	"fdp_backend/internals/configs"
)

// WhatsAppMessage is either plain text (Body) or a named template with
// positional body parameters.
type WhatsAppMessage struct {
	To             string
	Body           string
	TemplateName   string
	TemplateParams []string
}

type WhatsAppSender interface {
	SendWhatsApp(ctx context.Context, msg WhatsAppMessage) error
}

func NewWhatsAppSender(cfg configs.WhatsApp) WhatsAppSender {
	client := &http.Client{Timeout: cfg.RequestTimeout}
	switch strings.ToLower(cfg.Provider) {
	case "twilio":
		if cfg.TwilioSID == "" || cfg.TwilioToken == "" || cfg.TwilioNumber == "" {
			return NoopSender{}
		}
		return NewTwilioWhatsAppSender(cfg, client)
	default:
		if cfg.PhoneID == "" || cfg.Token == "" {
			return NoopSender{}
		}
		return NewCloudWhatsAppSender(cfg, client)
	}
}

/* =========================================================
   Meta WhatsApp Cloud API
========================================================= */

type CloudWhatsAppSender struct {
	baseURL string
	phoneID string
	token   string
	client  *http.Client
}

func NewCloudWhatsAppSender(cfg configs.WhatsApp, client *http.Client) *CloudWhatsAppSender {
	return &CloudWhatsAppSender{
		baseURL: strings.TrimRight(cfg.APIURL, "/"),
		phoneID: cfg.PhoneID,
		token:   cfg.Token,
		client:  client,
	}
}

type cloudParam struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type cloudComponent struct {
	Type       string       `json:"type"`
	Parameters []cloudParam `json:"parameters"`
}

type cloudTemplate struct {
	Name       string            `json:"name"`
	Language   map[string]string `json:"language"`
	Components []cloudComponent  `json:"components"`
}

type cloudPayload struct {
	MessagingProduct string            `json:"messaging_product"`
	To               string            `json:"to"`
	Type             string            `json:"type"`
	Text             map[string]string `json:"text,omitempty"`
	Template         *cloudTemplate    `json:"template,omitempty"`
}

func (s *CloudWhatsAppSender) SendWhatsApp(ctx context.Context, msg WhatsAppMessage) error {
	payload := cloudPayload{MessagingProduct: "whatsapp", To: msg.To}
	if msg.TemplateName != "" {
		tpl := &cloudTemplate{
			Name:       msg.TemplateName,
			Language:   map[string]string{"code": "en"},
			Components: []cloudComponent{},
		}
		if len(msg.TemplateParams) > 0 {
			params := make([]cloudParam, 0, len(msg.TemplateParams))
			for _, p := range msg.TemplateParams {
				params = append(params, cloudParam{Type: "text", Text: p})
			}
			tpl.Components = append(tpl.Components, cloudComponent{Type: "body", Parameters: params})
		}
		payload.Type = "template"
		payload.Template = tpl
	} else {
		payload.Type = "text"
		payload.Text = map[string]string{"body": msg.Body}
	}

	b, err := sonic.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/"+s.phoneID+"/messages", bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	return doSend(s.client, req)
}

/* =========================================================
   Twilio WhatsApp
========================================================= */

type TwilioWhatsAppSender struct {
	baseURL string
	sid     string
	token   string
	from    string
	client  *http.Client
}

func NewTwilioWhatsAppSender(cfg configs.WhatsApp, client *http.Client) *TwilioWhatsAppSender {
	return &TwilioWhatsAppSender{
		baseURL: strings.TrimRight(cfg.TwilioAPIURL, "/"),
		sid:     cfg.TwilioSID,
		token:   cfg.TwilioToken,
		from:    cfg.TwilioNumber,
		client:  client,
	}
}

// SendWhatsApp posts a form message. Twilio has no positional templates here,
// so a template message is flattened into its parameters.
func (s *TwilioWhatsAppSender) SendWhatsApp(ctx context.Context, msg WhatsAppMessage) error {
	body := msg.Body
	if body == "" && len(msg.TemplateParams) > 0 {
		body = strings.Join(msg.TemplateParams, "\n")
	}
	form := url.Values{}
	form.Set("From", "whatsapp:"+s.from)
	form.Set("To", "whatsapp:"+msg.To)
	form.Set("Body", body)

	endpoint := s.baseURL + "/Accounts/" + url.PathEscape(s.sid) + "/Messages.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.sid, s.token)
	return doSend(s.client, req)
}

func doSend(client *http.Client, req *http.Request) error {
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("whatsapp api %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

/* =========================================================
   Unconfigured transport
========================================================= */

type NoopSender struct{}

func (NoopSender) SendEmail(context.Context, EmailMessage) error { return ErrNotConfigured }
func (NoopSender) SendWhatsApp(context.Context, WhatsAppMessage) error { return ErrNotConfigured }

package notifier

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Telegram 单条消息长度上限，超出部分截断。
const telegramMaxTextLen = 4096

// Telegram 通知器：周期报告推送到指定群/频道。
type Telegram struct {
	botToken string
	chatID   string
	apiBase  string
	client   *http.Client
}

func NewTelegram(botToken, chatID string) *Telegram {
	return &Telegram{
		botToken: botToken,
		chatID:   chatID,
		apiBase:  "https://api.telegram.org",
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// SendText 推送文本消息。网络错误与 429/5xx 退避后重试，
// 其余 4xx（如 chat 不存在）直接返回，重试无意义。
func (t *Telegram) SendText(text string) error {
	if t.botToken == "" || t.chatID == "" {
		return fmt.Errorf("telegram 未配置 bot_token 或 chat_id")
	}
	if len(text) > telegramMaxTextLen {
		text = text[:telegramMaxTextLen]
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.botToken)
	form := url.Values{
		"chat_id":    {t.chatID},
		"text":       {text},
		"parse_mode": {"Markdown"},
	}

	backoff := 500 * time.Millisecond
	var lastErr error
	for attempt := 0; attempt < 4; attempt++ {
		if attempt > 0 {
			time.Sleep(backoff)
			backoff *= 2
		}
		resp, err := t.client.PostForm(endpoint, form)
		if err != nil {
			lastErr = err
			continue
		}
		var reply struct {
			OK          bool   `json:"ok"`
			Description string `json:"description"`
		}
		decodeErr := json.NewDecoder(resp.Body).Decode(&reply)
		resp.Body.Close()
		if resp.StatusCode == http.StatusOK && (reply.OK || decodeErr != nil) {
			return nil
		}
		desc := strings.TrimSpace(reply.Description)
		if desc == "" {
			desc = http.StatusText(resp.StatusCode)
		}
		lastErr = fmt.Errorf("telegram 返回 %d: %s", resp.StatusCode, desc)
		if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode/100 == 4 {
			return lastErr
		}
	}
	return lastErr
}

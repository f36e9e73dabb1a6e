package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Reply is one rendering instruction: a text body plus an optional reply
// keyboard. A nil Keyboard leaves the chat's current keyboard in place.
type Reply struct {
	Text           string
	Keyboard       [][]string
	RemoveKeyboard bool
}

// ToChattable converts a Reply into a sendable Telegram message.
func (r Reply) ToChattable(chatID int64) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, r.Text)
	if r.RemoveKeyboard {
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	} else if r.Keyboard != nil {
		msg.ReplyMarkup = toReplyMarkup(r.Keyboard)
	}
	return msg
}

func toReplyMarkup(grid [][]string) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(grid))
	for _, labels := range grid {
		row := make([]tgbotapi.KeyboardButton, 0, len(labels))
		for _, label := range labels {
			row = append(row, tgbotapi.NewKeyboardButton(label))
		}
		rows = append(rows, row)
	}
	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.ResizeKeyboard = true
	return markup
}

func reply(text string, keyboard [][]string) []Reply {
	return []Reply{{Text: text, Keyboard: keyboard}}
}

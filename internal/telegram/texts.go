package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

const callbackDepartures = "dep"

// mainMenuKeyboard is the inline action menu sent after /start.
func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Abfahrten", callbackDepartures),
		),
	)
}

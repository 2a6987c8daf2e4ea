package session

import "fmt"

// Application identity, rendered in the welcome message.
const (
	AppName    = "mvv-bot"
	AppVersion = "1.0.0"
)

// User-visible texts. German, like the bot's audience.
const (
	textWelcome = "*Hallo, ich bin der MVV Bot* [" + AppVersion + "] \U0001F916\n\n" +
		"Ich zeige dir die nächsten Abfahrten an Haltestellen in deiner Nähe.\n" +
		"Schicke mir einen Standort oder tippe /help für alle Kommandos.\n"

	textMenuPrompt = "Wähle eine Aktion:"

	textHelp = "Verfügbare Kommandos:\n\n" +
		"/help diese Nachricht anzeigen\n" +
		"/start den Bot (neu)starten\n" +
		"/dep Abfahrten von deinem Wohnort anzeigen\n" +
		"/sethome Wohnort neu setzen"

	textSetHomePrompt = "Wenn die nächste Nachricht ein Standort ist, wird er als dein neuer Wohnort gespeichert."

	textHomeUpdated = "Wohnort aktualisiert."

	textNoHome = "Du hast noch keinen Wohnort gesetzt. Tippe /sethome und schicke mir danach einen Standort."

	textUnknownCommand = "Unbekanntes Kommando. /help für weitere Infos eintippen."

	textNotTalkative = "Ich bin nicht sehr gesprächig. Tippe /help für weitere Infos ein."

	textNoStations = "Keine Haltestellen in der Nähe gefunden."

	textQueryFailed = "Die Abfahrten konnten gerade nicht abgerufen werden. Versuche es später noch einmal."

	textProfileError = "Dein Profil konnte nicht geladen werden. Versuche es später noch einmal."
)

func textNirvana(contentType string) string {
	return fmt.Sprintf("Dein \"%s\" ist im Nirwana gelandet ...", contentType)
}

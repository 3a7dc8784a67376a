package bot

const (
	msgStart = "Willkommen beim Bürgerbüro Terminbenachrichtigungsbot!\n" +
		"Verwende /subscribe, um Benachrichtigungen zu erhalten.\n" +
		"Verwende /unsubscribe, um keine Benachrichtigungen mehr zu erhalten.\n" +
		"Verwende /update, um deine Standorte zu ändern.\n" +
		"Verwende /status, um deine aktuellen Standorte zu sehen."

	msgAlreadySubscribed = "Du bist bereits angemeldet.\n" +
		"Verwende /update, um deine Standorte zu ändern.\n" +
		"Verwende /unsubscribe, um dich abzumelden."

	msgSelectPrompt = "Bitte wähle die gewünschten Standorte aus.\n" +
		"Sende die Nummern der Standorte, getrennt durch Kommas.\n\n" +
		"Verfügbare Standorte:\n"

	msgUpdatePrompt = "Aktualisiere deine bevorzugten Standorte.\n" +
		"Sende die Nummern der Standorte, getrennt durch Kommas.\n\n" +
		"Verfügbare Standorte:\n"

	msgNotSubscribedUpdate = "Du bist nicht angemeldet. Verwende /subscribe, um Benachrichtigungen zu erhalten."
	msgNotSubscribed       = "Du bist nicht für Benachrichtigungen angemeldet."

	msgSubscribed = "Du erhältst jetzt Benachrichtigungen für folgende Standorte:\n"
	msgUpdated    = "Deine Benachrichtigungseinstellungen wurden aktualisiert. " +
		"Du erhältst jetzt Benachrichtigungen für folgende Standorte:\n"
	msgStatus       = "Du bist für folgende Standorte angemeldet:\n"
	msgUnsubscribed = "Du wurdest von Benachrichtigungen abgemeldet."

	msgInvalidID    = "Ungültige Standortnummer: %s. Bitte versuche es erneut."
	msgInvalidInput = "Ungültige Eingabe: %s. Bitte verwende die Standortnummern."
	msgNoLocations  = "Keine gültigen Standorte ausgewählt. Bitte versuche es erneut."

	msgCancelled = "Aktion abgebrochen."
	msgUnknown   = "Entschuldigung, ich habe diesen Befehl nicht verstanden."
	msgInternal  = "Es ist ein Fehler aufgetreten. Bitte versuche es später erneut."
)

package adapter

import (
	"strings"

	"github.com/kapu/plex-request-bot-go/internal/domain"
)

// Messages is the reply text of one display language. Fields ending in
// Format take fmt verbs.
type Messages struct {
	Pong                 string
	HelpFormat           string // prefix
	CommandsTitle        string
	CommandDescriptions  map[domain.Verb]string
	CommandUsages        map[domain.Verb]string
	RequestUsageFormat   string // prefix
	NothingFound         string
	RequestFailed        string
	RequestConfirmFormat string // title, deep link
	PendingHeader        string
	NoPendingRequests    string
	DeleteDoneFormat     string // sender
	NothingToDelete      string
	PopularHeaderFormat  string // sender
	InvalidAmountFormat  string // min, max
	UnknownCommandFormat string // command, prefix
	ServiceUnavailable   string
}

var germanMessages = Messages{
	Pong:          "Pong!",
	HelpFormat:    "Hallo, ich bin **Plexy**, ein Bot für den Plex-Mediaserver. Mit `%s commands` kannst du dir alle meine Befehle anzeigen lassen.",
	CommandsTitle: "Verfügbare Befehle",
	CommandDescriptions: map[domain.Verb]string{
		domain.VerbPing:     "Prüft, ob ich noch wach bin.",
		domain.VerbHelp:     "Zeigt die Hilfe an.",
		domain.VerbCommands: "Zeigt alle verfügbaren Befehle an.",
		domain.VerbRequest:  "Fordert einen gewünschten Film an.",
		domain.VerbList:     "Listet alle angefragten Filme auf.",
		domain.VerbDelete:   "Löscht alle verfügbaren Anfragen in Ombi.",
		domain.VerbPopular:  "Zeigt aktuell beliebte Filme an.",
	},
	CommandUsages: map[domain.Verb]string{
		domain.VerbRequest: "request <Filmname>",
		domain.VerbPopular: "popular <Anzahl>",
	},
	RequestUsageFormat:   "Bitte einen Filmtitel angeben :) `%s request Deadpool` zum Beispiel.",
	NothingFound:         "Nichts dazu gefunden :(",
	RequestFailed:        "Es trat ein Fehler beim Anfordern des Titels auf.",
	RequestConfirmFormat: "Ich habe den Film [%s](%s) für dich angefordert. Du wirst benachrichtigt werden, sobald der Film verfügbar ist :)",
	PendingHeader:        "Das sind die aktuell in Ombi angefragten Filme:",
	NoPendingRequests:    "Aktuell sind keine Filme angefragt!",
	DeleteDoneFormat:     "Hey %s, ich habe die verfügbaren Filme gelöscht!",
	NothingToDelete:      "Es gibt keine Requests zum Löschen!",
	PopularHeaderFormat:  "Hey %s, hier sind aktuell beliebte Kinofilme:",
	InvalidAmountFormat:  "Du hast keine gültige Zahl (%d-%d) eingegeben.",
	UnknownCommandFormat: "Unbekannter Befehl '%s'. Mit `%s commands` kannst du dir meine Befehle anzeigen lassen.",
	ServiceUnavailable:   "Ombi oder TMDb ist gerade nicht erreichbar. Bitte versuche es später noch einmal.",
}

var englishMessages = Messages{
	Pong:          "Pong!",
	HelpFormat:    "Hi, I'm **Plexy**, a bot for the Plex media server. Use `%s commands` to see everything I can do.",
	CommandsTitle: "Available commands",
	CommandDescriptions: map[domain.Verb]string{
		domain.VerbPing:     "Checks whether I'm still awake.",
		domain.VerbHelp:     "Shows the help text.",
		domain.VerbCommands: "Shows all available commands.",
		domain.VerbRequest:  "Requests a movie.",
		domain.VerbList:     "Lists all requested movies.",
		domain.VerbDelete:   "Deletes all available requests in Ombi.",
		domain.VerbPopular:  "Shows currently popular movies.",
	},
	CommandUsages: map[domain.Verb]string{
		domain.VerbRequest: "request <title>",
		domain.VerbPopular: "popular <amount>",
	},
	RequestUsageFormat:   "Please give me a movie title :) `%s request Deadpool` for example.",
	NothingFound:         "Nothing found :(",
	RequestFailed:        "Something went wrong while requesting the title.",
	RequestConfirmFormat: "I requested the movie [%s](%s) for you. You will be notified once it is available :)",
	PendingHeader:        "These movies are currently requested in Ombi:",
	NoPendingRequests:    "There are no movie requests right now!",
	DeleteDoneFormat:     "Hey %s, I deleted the available movies!",
	NothingToDelete:      "There are no requests to delete!",
	PopularHeaderFormat:  "Hey %s, here are some currently popular movies:",
	InvalidAmountFormat:  "That is not a valid number (%d-%d).",
	UnknownCommandFormat: "Unknown command '%s'. Use `%s commands` to list my commands.",
	ServiceUnavailable:   "Ombi or TMDb is not reachable right now. Please try again later.",
}

// MessagesFor picks the catalog by the language part of a tag like "de-DE".
// Unsupported languages fall back to German.
func MessagesFor(language string) Messages {
	lang := strings.ToLower(strings.TrimSpace(language))
	if i := strings.IndexAny(lang, "-_"); i >= 0 {
		lang = lang[:i]
	}
	switch lang {
	case "en":
		return englishMessages
	default:
		return germanMessages
	}
}

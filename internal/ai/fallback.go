package ai

import (
	"fmt"
	"strings"
)

// fallbackCategory pairs a keyword set with the per-persona templates for
// it. The slice order below is the match priority: categories are checked
// top to bottom and the first hit wins, so a message containing both a
// question word and an emotional keyword draws from the question branch.
type fallbackCategory struct {
	name     string
	keywords []string
	respond  func(persona, msg string) string
}

var fallbackCategories = []fallbackCategory{
	{
		name:     "academic",
		keywords: []string{"matematika", "math", "aljabar", "geometry", "kalkulus", "trigonometri", "statistik"},
		respond: func(persona, msg string) string {
			if persona == "Guru Motivator" {
				return fmt.Sprintf("Wah %s ya! 📚 Oke deh, guru jelasin dari dasar. Sebenernya ini gampang kok kalau udah ngerti konsepnya. Mana nih yang bikin bingung?", msg)
			}
			return fmt.Sprintf("Math ya? %s emang tricky sih 🤔 Tapi tenang, gue bantuin. Mulai dari mana nih?", msg)
		},
	},
	{
		name:     "science",
		keywords: []string{"fisika", "physics", "kimia", "chemistry", "biologi", "biology"},
		respond: func(persona, msg string) string {
			if persona == "Guru Motivator" {
				return fmt.Sprintf("%s? Seru tuh! 🔬 Science emang keren banget. Oke guru jelasin ya, yang mana dulu nih yang pengen tau?", msg)
			}
			return fmt.Sprintf("Science! %s nih ya? Cool topic 🧪 Ada yang spesifik yang mau dibahas?", msg)
		},
	},
	{
		name:     "question",
		keywords: []string{"apa", "what", "bagaimana", "how", "kenapa", "why"},
		respond: func(persona, msg string) string {
			switch persona {
			case "Guru Motivator":
				return fmt.Sprintf("Good question! Tentang %s, coba kita bahas bareng ya 🤔 Kamu udah tau dasarnya belum?", msg)
			case "Papa Pelindung":
				return fmt.Sprintf("Anak papa nanya bagus nih 💪 Soal %s, papa jelasin ya. Dengerin baik-baik", msg)
			case "Pacar Romantis":
				return fmt.Sprintf("Sayang nanya %s? 💕 Oke deh baby, aku jelasin. Dengerin ya~", msg)
			default:
				return fmt.Sprintf("Oh %s ya? Interesting nih 🤔 Gue coba jelasin deh", msg)
			}
		},
	},
	{
		name:     "study",
		keywords: []string{"belajar", "study", "tugas", "pr", "homework", "ujian", "exam"},
		respond: func(persona, msg string) string {
			if persona == "Guru Motivator" {
				return fmt.Sprintf("Belajar %s ya? 📚 Oke, guru punya tips nih biar lebih gampang. Udah sampai mana?", msg)
			}
			return fmt.Sprintf("Lagi %s? Semangat! 💪 Butuh bantuan apa nih?", msg)
		},
	},
	{
		name:     "emotional",
		keywords: []string{"sedih", "sad", "stress", "capek", "tired", "bosan", "galau"},
		respond: func(persona, msg string) string {
			switch persona {
			case "Mama Penyayang":
				return fmt.Sprintf("Sayang kok %s? 🤱 Cerita sama mama apa yang bikin gitu. Mama dengerin kok 💕", msg)
			case "Papa Pelindung":
				return fmt.Sprintf("%s ya nak? 💪 Gapapa, papa ngerti kok. Coba cerita kenapa?", msg)
			case "Pacar Romantis":
				return fmt.Sprintf("Baby kok %s? 💕 Sini cerita sama aku. I'm here for you sayang ❤️", msg)
			default:
				return fmt.Sprintf("Eh %s kenapa? 🤗 Yuk cerita, mungkin bisa bantuin", msg)
			}
		},
	},
}

// FallbackReply classifies the message against the category list above and
// assembles a reply from the matched persona template; when nothing
// matches, the persona's generic template is used. Deterministic, no
// external calls.
func FallbackReply(userMessage, personaName string) string {
	if personaName == "" {
		personaName = "Sahabat Setia"
	}

	lower := strings.ToLower(userMessage)
	for _, category := range fallbackCategories {
		for _, keyword := range category.keywords {
			if strings.Contains(lower, keyword) {
				return category.respond(personaName, userMessage)
			}
		}
	}

	return genericReply(personaName, userMessage)
}

func genericReply(persona, msg string) string {
	switch persona {
	case "Guru Motivator":
		return fmt.Sprintf("Oh %s ya? 📚 Menarik nih! Guru suka bahas hal-hal gini. Kamu pengen tau apa spesifiknya?", msg)
	case "Pacar Romantis":
		return fmt.Sprintf("Sayang ngomong %s? 💕 Cute banget sih. Cerita lebih dong baby~", msg)
	case "Mama Penyayang":
		return fmt.Sprintf("Anak mama cerita soal %s ya? 🤱 Mama seneng dengerin. Lanjut dong ceritanya", msg)
	case "Papa Pelindung":
		return fmt.Sprintf("Hmm %s ya nak? 💪 Papa dengerin. Gimana cerita lengkapnya?", msg)
	case "Sahabat Setia":
		return fmt.Sprintf("Loh %s? 😎 Seru tuh! Spill dong detailnya bro", msg)
	default: // Kakak Kece
		return fmt.Sprintf("Dek! %s ya? 🌈 Kakak interested nih. Cerita lebih lanjut dong!", msg)
	}
}

// FallbackTitle derives a session title from the first user message: the
// first four words with an ellipsis, or a per-persona default when empty.
func FallbackTitle(firstMessage, personaName string) string {
	words := strings.Fields(firstMessage)
	if len(words) == 0 {
		return fmt.Sprintf("Chat dengan %s", personaName)
	}
	if len(words) > 4 {
		words = words[:4]
	}
	return strings.Join(words, " ") + "..."
}

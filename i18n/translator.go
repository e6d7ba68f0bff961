package i18n

// Translator retrieves localized messages for error codes.
// data provides optional metadata to embed in the message (for example,
// "type" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "describe_failed":
			return "値の記述に失敗しました"
		case "unsupported_type":
			if ty := data["type"]; ty != "" {
				return "エンコードできない型です: " + ty
			}
			return "エンコードできない型です"
		case "parse_error":
			return "解析エラー"
		case "duplicate_key":
			if k := data["key"]; k != "" {
				return "キーが重複しています: " + k
			}
			return "キーが重複しています"
		}
	default: // "en"
		switch code {
		case "describe_failed":
			return "value failed to describe itself"
		case "unsupported_type":
			if ty := data["type"]; ty != "" {
				return "unsupported type " + ty
			}
			return "unsupported type"
		case "parse_error":
			return "parse error"
		case "duplicate_key":
			if k := data["key"]; k != "" {
				return "duplicate key " + k
			}
			return "duplicate key"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }

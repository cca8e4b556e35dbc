package i18n

import (
	"sort"
	"strings"
	"sync"
)

// Translator retrieves localized messages for error codes.
// data carries the values substituted into the message template (for example,
// "expected", "value" or "field").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var templates = map[string]map[string]string{
	"en": {
		"invalid_type":          "value {value} type is {kind} - {expected} is required",
		"null_not_allowed":      "type {expected} does not allow null value",
		"pattern":               "value {value} is not in required format '{pattern}'",
		"invalid_enum":          "value {value} is not a member of {expected}",
		"field_type":            "variable {var} type check failed, expected type: {expected}, value: {value}",
		"union_no_match":        "value {value} can not be deserialized as any of {expected}",
		"no_codec":              "type {expected} is not supported in {direction}",
		"invalid_shape":         "JSON value type {kind} is not {expected}",
		"unsupported_key":       "map key type {expected} is not supported for JSON (de)serialization - key should be String",
		"invalid_format":        "failed to parse {expected} from {value}, format {format} is required",
		"case_count":            "tagged union {expected} should have exactly one case set, found {count}",
		"case_unknown":          "key '{key}' does not match any case in tagged union {expected}",
		"discriminator_missing": "JSON value does not have discriminator field {field}",
		"discriminator_unknown": "discriminator {field} value {value} does not match any case in tagged union {expected}",
		"discriminator_shape":   "case {key} of {expected} must encode as an object to carry discriminator {field}",
		"unknown_field":         "{expected} has no field {field}",
		"parse_error":           "parse error: {detail}",
		"duplicate_key":         "duplicate key",
		"truncated":             "truncated",
	},
	"ja": {
		"invalid_type":          "値 {value} の型は {kind} です - {expected} が必要です",
		"null_not_allowed":      "型 {expected} は null を許可しません",
		"pattern":               "値 {value} は形式 '{pattern}' に一致しません",
		"invalid_enum":          "値 {value} は {expected} のメンバーではありません",
		"field_type":            "変数 {var} の型検査に失敗しました。期待する型: {expected}, 値: {value}",
		"union_no_match":        "値 {value} は {expected} のいずれとしてもデシリアライズできません",
		"no_codec":              "型 {expected} は {direction} でサポートされていません",
		"invalid_shape":         "JSON 値の型 {kind} は {expected} ではありません",
		"unsupported_key":       "マップのキー型 {expected} は JSON 変換でサポートされていません - キーは String である必要があります",
		"invalid_format":        "{value} から {expected} を解析できません。形式 {format} が必要です",
		"case_count":            "タグ付きユニオン {expected} はケースを一つだけ持つ必要があります (検出: {count})",
		"case_unknown":          "キー '{key}' はタグ付きユニオン {expected} のどのケースにも一致しません",
		"discriminator_missing": "JSON 値に識別子フィールド {field} がありません",
		"discriminator_unknown": "識別子 {field} の値 {value} はタグ付きユニオン {expected} のどのケースにも一致しません",
		"discriminator_shape":   "{expected} のケース {key} は識別子 {field} を持つためにオブジェクトとしてエンコードされる必要があります",
		"unknown_field":         "{expected} にフィールド {field} はありません",
		"parse_error":           "解析エラー: {detail}",
		"duplicate_key":         "キーが重複しています",
		"truncated":             "打ち切られました",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tpl, ok := templates[t.lang][code]
	if !ok {
		tpl, ok = templates["en"][code]
	}
	if !ok {
		return code
	}
	return render(tpl, data)
}

// render substitutes {key} placeholders. Keys are replaced longest first so
// that overlapping names cannot clobber each other.
func render(tpl string, data map[string]string) string {
	if len(data) == 0 {
		return tpl
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })
	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", data[k])
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}

var (
	mu                           = sync.RWMutex{}
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}

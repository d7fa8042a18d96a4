// Package locale holds the user-facing strings in Japanese and English.
package locale

import (
	"log"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Message IDs.
const (
	Title          = "title"
	Catchphrase    = "catchphrase"
	TableIndex     = "tableIndex"
	TableBeat      = "tableBeat"
	TableFrameInt  = "tableFrameInt"
	TableFrame     = "tableFrame"
	TableTimecode  = "tableTimecode"
	ScriptSaved    = "scriptSaved"
	SettingsSaved  = "settingsSaved"
	SettingsReset  = "settingsReset"
	QRSaved        = "qrSaved"
	Watching       = "watching"
	BatchDone      = "batchDone"
	LanguageJa     = "langJapanese"
	LanguageEn     = "langEnglish"
	FrameUnit      = "frameUnit"
	VerifyMismatch = "verifyMismatch"
	VerifyOK       = "verifyOK"
)

var japanese = []*i18n.Message{
	{ID: Title, Other: "アホフレーム計算機"},
	{ID: Catchphrase, Other: "BPM とフレームレートから拍のフレーム位置を求めます"},
	{ID: TableIndex, Other: "#"},
	{ID: TableBeat, Other: "拍"},
	{ID: TableFrameInt, Other: "フレーム (整数)"},
	{ID: TableFrame, Other: "フレーム"},
	{ID: TableTimecode, Other: "タイムコード"},
	{ID: ScriptSaved, Other: "スクリプトを保存しました: {{.Path}}"},
	{ID: SettingsSaved, Other: "設定を保存しました"},
	{ID: SettingsReset, Other: "設定を初期値に戻しました"},
	{ID: QRSaved, Other: "QR コードを保存しました: {{.Path}}"},
	{ID: Watching, Other: "設定ファイルを監視しています: {{.Path}}"},
	{ID: BatchDone, Other: "{{.Count}} 件のスクリプトを書き出しました"},
	{ID: LanguageJa, Other: "日本語"},
	{ID: LanguageEn, Other: "英語"},
	{ID: FrameUnit, Other: "f"},
	{ID: VerifyMismatch, Other: "フレーム配列が一致しません"},
	{ID: VerifyOK, Other: "{{.Count}} 個のフレームを確認しました"},
}

var english = []*i18n.Message{
	{ID: Title, Other: "Aho Frame Calculator"},
	{ID: Catchphrase, Other: "Find the frame of every beat from BPM and frame rate"},
	{ID: TableIndex, Other: "#"},
	{ID: TableBeat, Other: "Beat"},
	{ID: TableFrameInt, Other: "Frame (int)"},
	{ID: TableFrame, Other: "Frame"},
	{ID: TableTimecode, Other: "Timecode"},
	{ID: ScriptSaved, Other: "Script saved: {{.Path}}"},
	{ID: SettingsSaved, Other: "Settings saved"},
	{ID: SettingsReset, Other: "Settings reset to defaults"},
	{ID: QRSaved, Other: "QR code saved: {{.Path}}"},
	{ID: Watching, Other: "Watching settings file: {{.Path}}"},
	{ID: BatchDone, Other: "Exported {{.Count}} scripts"},
	{ID: LanguageJa, Other: "Japanese"},
	{ID: LanguageEn, Other: "English"},
	{ID: FrameUnit, Other: "f"},
	{ID: VerifyMismatch, Other: "Frame array does not match"},
	{ID: VerifyOK, Other: "Verified {{.Count}} frames"},
}

var bundle = newBundle()

func newBundle() *i18n.Bundle {
	b := i18n.NewBundle(language.Japanese)
	if err := b.AddMessages(language.Japanese, japanese...); err != nil {
		panic(err)
	}
	if err := b.AddMessages(language.English, english...); err != nil {
		panic(err)
	}
	return b
}

// Localizer looks up strings for one language.
type Localizer struct {
	loc *i18n.Localizer
}

// New returns a Localizer for tag ("ja" or "en"). Unknown tags get Japanese.
func New(tag string) *Localizer {
	return &Localizer{loc: i18n.NewLocalizer(bundle, tag)}
}

// T returns the string for id. data fills template fields like {{.Path}}.
// A missing message returns id itself.
func (l *Localizer) T(id string, data ...map[string]interface{}) string {
	cfg := &i18n.LocalizeConfig{MessageID: id}
	if len(data) > 0 {
		cfg.TemplateData = data[0]
	}
	s, err := l.loc.Localize(cfg)
	if err != nil {
		log.Printf("[!] Missing translation %q: %v", id, err)
		return id
	}
	return s
}

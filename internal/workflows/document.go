package workflows

import (
	"encoding/hex"
	"time"

	"github.com/PolarWolf314/tdmigrate/internal/migrate"
	"github.com/PolarWolf314/tdmigrate/internal/mtp"
	"github.com/PolarWolf314/tdmigrate/internal/state"
)

// Document is the migrated state of one settings stream as written to
// disk.
type Document struct {
	Meta     DocumentMeta     `toml:"meta" json:"meta"`
	State    state.Snapshot   `toml:"state" json:"state"`
	Fallback FallbackDocument `toml:"fallback" json:"fallback"`
	Legacy   LegacyDocument   `toml:"legacy" json:"legacy"`
}

// DocumentMeta describes the run that produced a Document.
type DocumentMeta struct {
	RunID         string   `toml:"run_id" json:"run_id"`
	Input         string   `toml:"input" json:"input"`
	MigratedAt    string   `toml:"migrated_at" json:"migrated_at"`
	FormatVersion int32    `toml:"format_version" json:"format_version"`
	Records       int      `toml:"records" json:"records"`
	Discarded     int      `toml:"discarded" json:"discarded"`
	Warnings      []string `toml:"warnings,omitempty" json:"warnings,omitempty"`
}

// FallbackDocument is the materialized fallback configuration.
type FallbackDocument struct {
	Source                string             `toml:"source" json:"source"`
	Environment           string             `toml:"environment" json:"environment"`
	ChatSizeMax           int32              `toml:"chat_size_max" json:"chat_size_max"`
	MegagroupSizeMax      int32              `toml:"megagroup_size_max" json:"megagroup_size_max"`
	ForwardedCountMax     int32              `toml:"forwarded_count_max" json:"forwarded_count_max"`
	SavedGifsLimit        int32              `toml:"saved_gifs_limit" json:"saved_gifs_limit"`
	StickersRecentLimit   int32              `toml:"stickers_recent_limit" json:"stickers_recent_limit"`
	StickersFavedLimit    int32              `toml:"stickers_faved_limit" json:"stickers_faved_limit"`
	PinnedDialogsCountMax int32              `toml:"pinned_dialogs_count_max" json:"pinned_dialogs_count_max"`
	EditTimeLimit         int32              `toml:"edit_time_limit" json:"edit_time_limit"`
	CaptionLengthMax      int32              `toml:"caption_length_max" json:"caption_length_max"`
	WebFileDcID           int32              `toml:"web_file_dc_id" json:"web_file_dc_id"`
	TxtDomainString       string             `toml:"txt_domain_string" json:"txt_domain_string"`
	InternalLinksDomain   string             `toml:"internal_links_domain" json:"internal_links_domain"`
	DcOptions             []mtp.DcOption     `toml:"dc_options,omitempty" json:"dc_options,omitempty"`
	CdnKeys               []mtp.CdnPublicKey `toml:"cdn_keys,omitempty" json:"cdn_keys,omitempty"`
	// Serialized is the configuration in its binary form, hex encoded.
	Serialized string `toml:"serialized" json:"serialized"`
}

// LegacyDocument keeps the values that have no home in the current
// settings but are needed by a later storage pass.
type LegacyDocument struct {
	ThemeKeyLegacy     string `toml:"theme_key_legacy,omitempty" json:"theme_key_legacy,omitempty"`
	ThemeKeyDay        string `toml:"theme_key_day,omitempty" json:"theme_key_day,omitempty"`
	ThemeKeyNight      string `toml:"theme_key_night,omitempty" json:"theme_key_night,omitempty"`
	BackgroundKeyDay   string `toml:"background_key_day,omitempty" json:"background_key_day,omitempty"`
	BackgroundKeyNight string `toml:"background_key_night,omitempty" json:"background_key_night,omitempty"`
	TileDay            bool   `toml:"tile_day" json:"tile_day"`
	TileNight          bool   `toml:"tile_night" json:"tile_night"`
	LangPackKey        string `toml:"lang_pack_key,omitempty" json:"lang_pack_key,omitempty"`
	LanguagesKey       string `toml:"languages_key,omitempty" json:"languages_key,omitempty"`

	CacheTotalSizeLimit        int64 `toml:"cache_total_size_limit,omitempty" json:"cache_total_size_limit,omitempty"`
	CacheTotalTimeLimit        int32 `toml:"cache_total_time_limit,omitempty" json:"cache_total_time_limit,omitempty"`
	CacheBigFileTotalSizeLimit int64 `toml:"cache_big_file_total_size_limit,omitempty" json:"cache_big_file_total_size_limit,omitempty"`
	CacheBigFileTotalTimeLimit int32 `toml:"cache_big_file_total_time_limit,omitempty" json:"cache_big_file_total_time_limit,omitempty"`

	MainDcID         int32   `toml:"main_dc_id,omitempty" json:"main_dc_id,omitempty"`
	UserID           int32   `toml:"user_id,omitempty" json:"user_id,omitempty"`
	AuthKeyDcs       []int32 `toml:"auth_key_dcs,omitempty" json:"auth_key_dcs,omitempty"`
	MtpAuthorization string  `toml:"mtp_authorization,omitempty" json:"mtp_authorization,omitempty"`
}

func newDocument(runID, input string, formatVersion int32, result *migrate.Result, snap state.Snapshot) Document {
	config := result.Fallback.Config
	ctx := result.Context

	doc := Document{
		Meta: DocumentMeta{
			RunID:         runID,
			Input:         input,
			MigratedAt:    time.Now().UTC().Format(time.RFC3339),
			FormatVersion: formatVersion,
			Records:       result.Records,
			Discarded:     result.Discarded,
			Warnings:      result.Warnings,
		},
		State: snap,
		Fallback: FallbackDocument{
			Source:                result.Fallback.Source.String(),
			Environment:           config.Environment.String(),
			ChatSizeMax:           config.ChatSizeMax,
			MegagroupSizeMax:      config.MegagroupSizeMax,
			ForwardedCountMax:     config.ForwardedCountMax,
			SavedGifsLimit:        config.SavedGifsLimit,
			StickersRecentLimit:   config.StickersRecentLimit,
			StickersFavedLimit:    config.StickersFavedLimit,
			PinnedDialogsCountMax: config.PinnedDialogsCountMax,
			EditTimeLimit:         config.EditTimeLimit,
			CaptionLengthMax:      config.CaptionLengthMax,
			WebFileDcID:           config.WebFileDcID,
			TxtDomainString:       config.TxtDomainString,
			InternalLinksDomain:   config.InternalLinksDomain,
			DcOptions:             config.DcOptions.Options(),
			CdnKeys:               config.DcOptions.CdnKeys(),
			Serialized:            hexString(config.Serialize()),
		},
		Legacy: LegacyDocument{
			ThemeKeyLegacy:             keyString(ctx.ThemeKeyLegacy),
			ThemeKeyDay:                keyString(ctx.ThemeKeyDay),
			ThemeKeyNight:              keyString(ctx.ThemeKeyNight),
			BackgroundKeyDay:           keyString(ctx.BackgroundKeyDay),
			BackgroundKeyNight:         keyString(ctx.BackgroundKeyNight),
			TileDay:                    ctx.TileDay,
			TileNight:                  ctx.TileNight,
			LangPackKey:                keyString(ctx.LangPackKey),
			LanguagesKey:               keyString(ctx.LanguagesKey),
			CacheTotalSizeLimit:        ctx.CacheTotalSizeLimit,
			CacheTotalTimeLimit:        ctx.CacheTotalTimeLimit,
			CacheBigFileTotalSizeLimit: ctx.CacheBigFileTotalSizeLimit,
			CacheBigFileTotalTimeLimit: ctx.CacheBigFileTotalTimeLimit,
			MainDcID:                   ctx.LegacyMainDcID,
			UserID:                     ctx.LegacyUserID,
			MtpAuthorization:           hexString(ctx.MtpAuthorization),
		},
	}
	for _, key := range ctx.LegacyKeys {
		doc.Legacy.AuthKeyDcs = append(doc.Legacy.AuthKeyDcs, key.DcID)
	}
	return doc
}

func keyString(key uint64) string {
	if key == 0 {
		return ""
	}
	return state.ID64(key).String()
}

func hexString(data []byte) string {
	return hex.EncodeToString(data)
}

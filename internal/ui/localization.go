package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle     = "app_title"
	KeyConvert      = "convert"
	KeyStop         = "stop"
	KeySettings     = "settings"
	KeyFile         = "file"
	KeyLanguage     = "language"
	KeyTheme        = "theme"
	KeyAddVideos    = "add_videos"
	KeyAddPhotos    = "add_photos"
	KeyAddFolder    = "add_folder"
	KeyClearQueue   = "clear_queue"
	KeyOpen         = "open"
	KeyReveal       = "reveal"
	KeyRemove       = "remove"
	KeySave         = "save"
	KeyCancel       = "cancel"
	KeyBrowse       = "browse"
	KeyDelete       = "delete"

	KeyPreset       = "preset"
	KeySavePreset   = "save_preset"
	KeyDeletePreset = "delete_preset"
	KeyPresetName   = "preset_name"
	KeyPresetSaved  = "preset_saved"

	KeySectionOutput    = "section_output"
	KeySectionQuality   = "section_quality"
	KeySectionTrimMerge = "section_trim_merge"
	KeySectionTransform = "section_transform"
	KeySectionWatermark = "section_watermark"
	KeySectionMetadata  = "section_metadata"

	KeyOutputDirectory = "output_directory"
	KeyVideoFormat     = "video_format"
	KeyPhotoFormat     = "photo_format"
	KeyOverwrite       = "overwrite"
	KeyFastCopy        = "fast_copy"
	KeyVideoCodec      = "video_codec"
	KeyHWEncoder       = "hw_encoder"
	KeyCRF             = "crf"
	KeyEncoderPreset   = "encoder_preset"
	KeyPhotoQuality    = "photo_quality"

	KeyTrimStart = "trim_start"
	KeyTrimEnd   = "trim_end"
	KeyMerge     = "merge"
	KeyMergeName = "merge_name"

	KeyResizeWidth  = "resize_width"
	KeyResizeHeight = "resize_height"
	KeyCropWidth    = "crop_width"
	KeyCropHeight   = "crop_height"
	KeyCropX        = "crop_x"
	KeyCropY        = "crop_y"
	KeyRotate       = "rotate"
	KeySpeed        = "speed"
	KeyPortrait     = "portrait"

	KeyWatermarkImage   = "watermark_image"
	KeyWatermarkPos     = "watermark_pos"
	KeyWatermarkOpacity = "watermark_opacity"
	KeyWatermarkScale   = "watermark_scale"
	KeyTextWatermark    = "text_watermark"
	KeyTextSize         = "text_size"
	KeyTextColor        = "text_color"
	KeyTextBox          = "text_box"
	KeyTextFont         = "text_font"

	KeyStripMetadata = "strip_metadata"
	KeyCopyMetadata  = "copy_metadata"
	KeyMetaTitle     = "meta_title"
	KeyMetaComment   = "meta_comment"
	KeyMetaAuthor    = "meta_author"
	KeyMetaCopyright = "meta_copyright"

	KeyQueue            = "queue"
	KeyLog              = "log"
	KeyCurrentFile      = "current_file"
	KeyOverallProgress  = "overall_progress"
	KeyConversionDone   = "conversion_done"
	KeyConversionStop   = "conversion_stopped"
	KeyNoFiles          = "no_files"
	KeyFFmpegMissing    = "ffmpeg_missing"
	KeyLocateFFmpeg     = "locate_ffmpeg"
	KeySettingsSaved    = "settings_saved"
	KeyErrorOpeningFile = "error_opening_file"
	KeyFFmpegPath       = "ffmpeg_path"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"uk": "Українська",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:     "Media Converter",
		KeyConvert:      "Convert",
		KeyStop:         "Stop",
		KeySettings:     "Settings",
		KeyFile:         "File",
		KeyLanguage:     "Language",
		KeyTheme:        "Theme",
		KeyAddVideos:    "Add Videos",
		KeyAddPhotos:    "Add Photos",
		KeyAddFolder:    "Add Folder",
		KeyClearQueue:   "Clear",
		KeyOpen:         "Open",
		KeyReveal:       "Reveal",
		KeyRemove:       "Remove",
		KeySave:         "Save",
		KeyCancel:       "Cancel",
		KeyBrowse:       "Browse",
		KeyDelete:       "Delete",

		KeyPreset:       "Preset",
		KeySavePreset:   "Save Preset",
		KeyDeletePreset: "Delete Preset",
		KeyPresetName:   "Preset name",
		KeyPresetSaved:  "Preset saved",

		KeySectionOutput:    "Output",
		KeySectionQuality:   "Quality",
		KeySectionTrimMerge: "Trim & Merge",
		KeySectionTransform: "Transform",
		KeySectionWatermark: "Watermark",
		KeySectionMetadata:  "Metadata",

		KeyOutputDirectory: "Output Directory",
		KeyVideoFormat:     "Video Format",
		KeyPhotoFormat:     "Photo Format",
		KeyOverwrite:       "Overwrite existing files",
		KeyFastCopy:        "Fast copy (remux when possible)",
		KeyVideoCodec:      "Video Codec",
		KeyHWEncoder:       "Hardware Encoder",
		KeyCRF:             "Quality (CRF)",
		KeyEncoderPreset:   "Encoder Preset",
		KeyPhotoQuality:    "Photo Quality",

		KeyTrimStart: "Trim Start (s)",
		KeyTrimEnd:   "Trim End (s)",
		KeyMerge:     "Merge videos into one file",
		KeyMergeName: "Merged file name",

		KeyResizeWidth:  "Resize Width",
		KeyResizeHeight: "Resize Height",
		KeyCropWidth:    "Crop Width",
		KeyCropHeight:   "Crop Height",
		KeyCropX:        "Crop X",
		KeyCropY:        "Crop Y",
		KeyRotate:       "Rotate",
		KeySpeed:        "Playback Speed",
		KeyPortrait:     "Portrait 9:16",

		KeyWatermarkImage:   "Watermark Image",
		KeyWatermarkPos:     "Position",
		KeyWatermarkOpacity: "Opacity %",
		KeyWatermarkScale:   "Scale %",
		KeyTextWatermark:    "Text Watermark",
		KeyTextSize:         "Font Size",
		KeyTextColor:        "Font Color",
		KeyTextBox:          "Background box",
		KeyTextFont:         "Font File",

		KeyStripMetadata: "Strip all metadata",
		KeyCopyMetadata:  "Copy source metadata",
		KeyMetaTitle:     "Title",
		KeyMetaComment:   "Comment",
		KeyMetaAuthor:    "Author",
		KeyMetaCopyright: "Copyright",

		KeyQueue:            "Queue",
		KeyLog:              "Log",
		KeyCurrentFile:      "Current file",
		KeyOverallProgress:  "Overall",
		KeyConversionDone:   "Conversion finished",
		KeyConversionStop:   "Conversion stopped",
		KeyNoFiles:          "Add files to the queue first",
		KeyFFmpegMissing:    "ffmpeg was not found. Install it or locate the binary.",
		KeyLocateFFmpeg:     "Locate ffmpeg...",
		KeySettingsSaved:    "Settings saved successfully!",
		KeyErrorOpeningFile: "Error opening file",
		KeyFFmpegPath:       "FFmpeg Path",
	}

	// Ukrainian texts
	l.texts["uk"] = map[string]string{
		KeyAppTitle:     "Медіа Конвертер",
		KeyConvert:      "Конвертувати",
		KeyStop:         "Стоп",
		KeySettings:     "Налаштування",
		KeyFile:         "Файл",
		KeyLanguage:     "Мова",
		KeyTheme:        "Тема",
		KeyAddVideos:    "Додати відео",
		KeyAddPhotos:    "Додати фото",
		KeyAddFolder:    "Додати теку",
		KeyClearQueue:   "Очистити",
		KeyOpen:         "Відкрити",
		KeyReveal:       "Показати",
		KeyRemove:       "Видалити",
		KeySave:         "Зберегти",
		KeyCancel:       "Скасувати",
		KeyBrowse:       "Огляд",
		KeyDelete:       "Видалити",

		KeyPreset:       "Пресет",
		KeySavePreset:   "Зберегти пресет",
		KeyDeletePreset: "Видалити пресет",
		KeyPresetName:   "Назва пресета",
		KeyPresetSaved:  "Пресет збережено",

		KeySectionOutput:    "Вивід",
		KeySectionQuality:   "Якість",
		KeySectionTrimMerge: "Обрізання та злиття",
		KeySectionTransform: "Перетворення",
		KeySectionWatermark: "Водяний знак",
		KeySectionMetadata:  "Метадані",

		KeyOutputDirectory: "Тека виводу",
		KeyVideoFormat:     "Формат відео",
		KeyPhotoFormat:     "Формат фото",
		KeyOverwrite:       "Перезаписувати наявні файли",
		KeyFastCopy:        "Швидке копіювання (remux якщо можливо)",
		KeyVideoCodec:      "Відеокодек",
		KeyHWEncoder:       "Апаратний кодувальник",
		KeyCRF:             "Якість (CRF)",
		KeyEncoderPreset:   "Пресет кодувальника",
		KeyPhotoQuality:    "Якість фото",

		KeyTrimStart: "Початок обрізання (с)",
		KeyTrimEnd:   "Кінець обрізання (с)",
		KeyMerge:     "Об'єднати відео в один файл",
		KeyMergeName: "Назва об'єднаного файлу",

		KeyResizeWidth:  "Ширина",
		KeyResizeHeight: "Висота",
		KeyCropWidth:    "Ширина кадрування",
		KeyCropHeight:   "Висота кадрування",
		KeyCropX:        "Кадрування X",
		KeyCropY:        "Кадрування Y",
		KeyRotate:       "Поворот",
		KeySpeed:        "Швидкість відтворення",
		KeyPortrait:     "Портрет 9:16",

		KeyWatermarkImage:   "Зображення знака",
		KeyWatermarkPos:     "Позиція",
		KeyWatermarkOpacity: "Непрозорість %",
		KeyWatermarkScale:   "Масштаб %",
		KeyTextWatermark:    "Текстовий знак",
		KeyTextSize:         "Розмір шрифту",
		KeyTextColor:        "Колір шрифту",
		KeyTextBox:          "Фонова підкладка",
		KeyTextFont:         "Файл шрифту",

		KeyStripMetadata: "Прибрати всі метадані",
		KeyCopyMetadata:  "Копіювати метадані джерела",
		KeyMetaTitle:     "Назва",
		KeyMetaComment:   "Коментар",
		KeyMetaAuthor:    "Автор",
		KeyMetaCopyright: "Авторські права",

		KeyQueue:            "Черга",
		KeyLog:              "Журнал",
		KeyCurrentFile:      "Поточний файл",
		KeyOverallProgress:  "Загалом",
		KeyConversionDone:   "Конвертацію завершено",
		KeyConversionStop:   "Конвертацію зупинено",
		KeyNoFiles:          "Спершу додайте файли до черги",
		KeyFFmpegMissing:    "ffmpeg не знайдено. Встановіть його або вкажіть шлях.",
		KeyLocateFFmpeg:     "Вказати ffmpeg...",
		KeySettingsSaved:    "Налаштування збережено!",
		KeyErrorOpeningFile: "Помилка відкриття файлу",
		KeyFFmpegPath:       "Шлях до FFmpeg",
	}
}

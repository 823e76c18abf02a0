package ui

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/mediabatch/media-converter/internal/model"
	"github.com/mediabatch/media-converter/internal/platform"
	"github.com/mediabatch/media-converter/internal/preset"
)

// OptionsPanel is the accordion of conversion options. It renders a
// ConversionSettings value into form widgets and reads one back out.
type OptionsPanel struct {
	localization *Localization

	// Fields not exposed as widgets keep their values across a
	// SetSettings/Settings round trip
	base model.ConversionSettings

	videoFormatSelect *widget.Select
	photoFormatSelect *widget.Select
	overwriteCheck    *widget.Check
	fastCopyCheck     *widget.Check

	codecSelect         *widget.Select
	hwSelect            *widget.Select
	crfEntry            *widget.Entry
	encoderPresetSelect *widget.Select
	photoQualityEntry   *widget.Entry

	trimStartEntry *widget.Entry
	trimEndEntry   *widget.Entry
	mergeCheck     *widget.Check
	mergeNameEntry *widget.Entry

	resizeWEntry   *widget.Entry
	resizeHEntry   *widget.Entry
	cropWEntry     *widget.Entry
	cropHEntry     *widget.Entry
	cropXEntry     *widget.Entry
	cropYEntry     *widget.Entry
	rotateSelect   *widget.Select
	speedEntry     *widget.Entry
	portraitSelect *widget.Select

	wmPathEntry    *widget.Entry
	wmPosSelect    *widget.Select
	wmOpacityEntry *widget.Entry
	wmScaleEntry   *widget.Entry
	textEntry      *widget.Entry
	textPosSelect  *widget.Select
	textSizeEntry  *widget.Entry
	textColorEntry *widget.Entry
	textBoxCheck   *widget.Check
	textFontEntry  *widget.Entry

	stripMetaCheck     *widget.Check
	copyMetaCheck      *widget.Check
	metaTitleEntry     *widget.Entry
	metaCommentEntry   *widget.Entry
	metaAuthorEntry    *widget.Entry
	metaCopyrightEntry *widget.Entry

	accordion *widget.Accordion
}

// NewOptionsPanel creates the options accordion populated with defaults
func NewOptionsPanel(localization *Localization) *OptionsPanel {
	op := &OptionsPanel{localization: localization}
	op.createUI()
	op.SetSettings(model.DefaultSettings())
	return op
}

// Container returns the root canvas object
func (op *OptionsPanel) Container() fyne.CanvasObject {
	return op.accordion
}

func (op *OptionsPanel) createUI() {
	loc := op.localization

	// Output
	op.videoFormatSelect = widget.NewSelect(model.VideoFormats, nil)
	op.photoFormatSelect = widget.NewSelect(model.PhotoFormats, nil)
	op.overwriteCheck = widget.NewCheck(loc.GetText(KeyOverwrite), nil)
	op.fastCopyCheck = widget.NewCheck(loc.GetText(KeyFastCopy), nil)

	outputForm := widget.NewForm(
		widget.NewFormItem(loc.GetText(KeyVideoFormat), op.videoFormatSelect),
		widget.NewFormItem(loc.GetText(KeyPhotoFormat), op.photoFormatSelect),
		widget.NewFormItem("", op.overwriteCheck),
		widget.NewFormItem("", op.fastCopyCheck),
	)

	// Quality
	op.codecSelect = widget.NewSelect(stringsOf(model.VideoCodecs), nil)
	op.hwSelect = widget.NewSelect(stringsOf(model.HWEncoders), nil)
	op.crfEntry = widget.NewEntry()
	op.crfEntry.SetPlaceHolder("0-51")
	op.encoderPresetSelect = widget.NewSelect(model.SpeedPresets, nil)
	op.photoQualityEntry = widget.NewEntry()
	op.photoQualityEntry.SetPlaceHolder("0-100")

	qualityForm := widget.NewForm(
		widget.NewFormItem(loc.GetText(KeyVideoCodec), op.codecSelect),
		widget.NewFormItem(loc.GetText(KeyHWEncoder), op.hwSelect),
		widget.NewFormItem(loc.GetText(KeyCRF), op.crfEntry),
		widget.NewFormItem(loc.GetText(KeyEncoderPreset), op.encoderPresetSelect),
		widget.NewFormItem(loc.GetText(KeyPhotoQuality), op.photoQualityEntry),
	)

	// Trim & Merge
	op.trimStartEntry = widget.NewEntry()
	op.trimStartEntry.SetPlaceHolder("0.0")
	op.trimEndEntry = widget.NewEntry()
	op.trimEndEntry.SetPlaceHolder("0.0")
	op.mergeCheck = widget.NewCheck(loc.GetText(KeyMerge), nil)
	op.mergeNameEntry = widget.NewEntry()
	op.mergeNameEntry.SetPlaceHolder("merged")

	trimForm := widget.NewForm(
		widget.NewFormItem(loc.GetText(KeyTrimStart), op.trimStartEntry),
		widget.NewFormItem(loc.GetText(KeyTrimEnd), op.trimEndEntry),
		widget.NewFormItem("", op.mergeCheck),
		widget.NewFormItem(loc.GetText(KeyMergeName), op.mergeNameEntry),
	)

	// Transform
	op.resizeWEntry = widget.NewEntry()
	op.resizeHEntry = widget.NewEntry()
	op.cropWEntry = widget.NewEntry()
	op.cropHEntry = widget.NewEntry()
	op.cropXEntry = widget.NewEntry()
	op.cropYEntry = widget.NewEntry()
	op.rotateSelect = widget.NewSelect(stringsOf(model.Rotations), nil)
	op.speedEntry = widget.NewEntry()
	op.speedEntry.SetPlaceHolder("1.0")
	op.portraitSelect = widget.NewSelect(stringsOf(model.PortraitModes), nil)

	transformForm := widget.NewForm(
		widget.NewFormItem(loc.GetText(KeyResizeWidth), op.resizeWEntry),
		widget.NewFormItem(loc.GetText(KeyResizeHeight), op.resizeHEntry),
		widget.NewFormItem(loc.GetText(KeyCropWidth), op.cropWEntry),
		widget.NewFormItem(loc.GetText(KeyCropHeight), op.cropHEntry),
		widget.NewFormItem(loc.GetText(KeyCropX), op.cropXEntry),
		widget.NewFormItem(loc.GetText(KeyCropY), op.cropYEntry),
		widget.NewFormItem(loc.GetText(KeyRotate), op.rotateSelect),
		widget.NewFormItem(loc.GetText(KeySpeed), op.speedEntry),
		widget.NewFormItem(loc.GetText(KeyPortrait), op.portraitSelect),
	)

	// Watermark
	op.wmPathEntry = widget.NewEntry()
	wmBrowseBtn := widget.NewButton(loc.GetText(KeyBrowse), func() {
		if path := platform.PickMediaFile(loc.GetText(KeyWatermarkImage), "Images", "png", "jpg", "jpeg", "webp"); path != "" {
			op.wmPathEntry.SetText(path)
		}
	})
	wmPathRow := container.NewBorder(nil, nil, nil, wmBrowseBtn, op.wmPathEntry)

	op.wmPosSelect = widget.NewSelect(stringsOf(model.Positions), nil)
	op.wmOpacityEntry = widget.NewEntry()
	op.wmScaleEntry = widget.NewEntry()
	op.textEntry = widget.NewEntry()
	op.textPosSelect = widget.NewSelect(stringsOf(model.Positions), nil)
	op.textSizeEntry = widget.NewEntry()
	op.textColorEntry = widget.NewEntry()
	op.textBoxCheck = widget.NewCheck(loc.GetText(KeyTextBox), nil)
	op.textFontEntry = widget.NewEntry()
	fontBrowseBtn := widget.NewButton(loc.GetText(KeyBrowse), func() {
		if path := platform.PickMediaFile(loc.GetText(KeyTextFont), "Fonts", "ttf", "otf"); path != "" {
			op.textFontEntry.SetText(path)
		}
	})
	fontRow := container.NewBorder(nil, nil, nil, fontBrowseBtn, op.textFontEntry)

	watermarkForm := widget.NewForm(
		widget.NewFormItem(loc.GetText(KeyWatermarkImage), wmPathRow),
		widget.NewFormItem(loc.GetText(KeyWatermarkPos), op.wmPosSelect),
		widget.NewFormItem(loc.GetText(KeyWatermarkOpacity), op.wmOpacityEntry),
		widget.NewFormItem(loc.GetText(KeyWatermarkScale), op.wmScaleEntry),
		widget.NewFormItem(loc.GetText(KeyTextWatermark), op.textEntry),
		widget.NewFormItem(loc.GetText(KeyWatermarkPos), op.textPosSelect),
		widget.NewFormItem(loc.GetText(KeyTextSize), op.textSizeEntry),
		widget.NewFormItem(loc.GetText(KeyTextColor), op.textColorEntry),
		widget.NewFormItem("", op.textBoxCheck),
		widget.NewFormItem(loc.GetText(KeyTextFont), fontRow),
	)

	// Metadata
	op.stripMetaCheck = widget.NewCheck(loc.GetText(KeyStripMetadata), nil)
	op.copyMetaCheck = widget.NewCheck(loc.GetText(KeyCopyMetadata), nil)
	op.metaTitleEntry = widget.NewEntry()
	op.metaCommentEntry = widget.NewEntry()
	op.metaAuthorEntry = widget.NewEntry()
	op.metaCopyrightEntry = widget.NewEntry()

	metadataForm := widget.NewForm(
		widget.NewFormItem("", op.stripMetaCheck),
		widget.NewFormItem("", op.copyMetaCheck),
		widget.NewFormItem(loc.GetText(KeyMetaTitle), op.metaTitleEntry),
		widget.NewFormItem(loc.GetText(KeyMetaComment), op.metaCommentEntry),
		widget.NewFormItem(loc.GetText(KeyMetaAuthor), op.metaAuthorEntry),
		widget.NewFormItem(loc.GetText(KeyMetaCopyright), op.metaCopyrightEntry),
	)

	op.accordion = widget.NewAccordion(
		widget.NewAccordionItem(loc.GetText(KeySectionOutput), outputForm),
		widget.NewAccordionItem(loc.GetText(KeySectionQuality), qualityForm),
		widget.NewAccordionItem(loc.GetText(KeySectionTrimMerge), trimForm),
		widget.NewAccordionItem(loc.GetText(KeySectionTransform), transformForm),
		widget.NewAccordionItem(loc.GetText(KeySectionWatermark), watermarkForm),
		widget.NewAccordionItem(loc.GetText(KeySectionMetadata), metadataForm),
	)
	op.accordion.Open(0)
}

// SetSettings populates the form widgets from a settings value
func (op *OptionsPanel) SetSettings(s model.ConversionSettings) {
	op.base = s

	op.videoFormatSelect.SetSelected(s.VideoFormat)
	op.photoFormatSelect.SetSelected(s.PhotoFormat)
	op.overwriteCheck.SetChecked(s.Overwrite)
	op.fastCopyCheck.SetChecked(s.FastCopy)

	op.codecSelect.SetSelected(string(s.Codec))
	op.hwSelect.SetSelected(string(s.HW))
	op.crfEntry.SetText(strconv.Itoa(s.CRF))
	op.encoderPresetSelect.SetSelected(s.SpeedPreset)
	op.photoQualityEntry.SetText(strconv.Itoa(s.PhotoQuality))

	op.trimStartEntry.SetText(floatField(s.TrimStart))
	op.trimEndEntry.SetText(floatField(s.TrimEnd))
	op.mergeCheck.SetChecked(s.Merge)
	op.mergeNameEntry.SetText(s.MergeName)

	op.resizeWEntry.SetText(intField(s.ResizeW))
	op.resizeHEntry.SetText(intField(s.ResizeH))
	op.cropWEntry.SetText(intField(s.CropW))
	op.cropHEntry.SetText(intField(s.CropH))
	op.cropXEntry.SetText(intField(s.CropX))
	op.cropYEntry.SetText(intField(s.CropY))
	op.rotateSelect.SetSelected(string(s.Rotate))
	op.speedEntry.SetText(floatField(s.Speed))
	op.portraitSelect.SetSelected(string(s.Portrait))

	op.wmPathEntry.SetText(s.WatermarkPath)
	op.wmPosSelect.SetSelected(string(s.WatermarkPos))
	op.wmOpacityEntry.SetText(strconv.Itoa(s.WatermarkOpacity))
	op.wmScaleEntry.SetText(strconv.Itoa(s.WatermarkScale))
	op.textEntry.SetText(s.TextWatermark)
	op.textPosSelect.SetSelected(string(s.TextPos))
	op.textSizeEntry.SetText(strconv.Itoa(s.TextSize))
	op.textColorEntry.SetText(s.TextColor)
	op.textBoxCheck.SetChecked(s.TextBox)
	op.textFontEntry.SetText(s.TextFont)

	op.stripMetaCheck.SetChecked(s.StripMetadata)
	op.copyMetaCheck.SetChecked(s.CopyMetadata)
	op.metaTitleEntry.SetText(s.MetaTitle)
	op.metaCommentEntry.SetText(s.MetaComment)
	op.metaAuthorEntry.SetText(s.MetaAuthor)
	op.metaCopyrightEntry.SetText(s.MetaCopyright)
}

// Settings reads the current form state back into a settings value
func (op *OptionsPanel) Settings() model.ConversionSettings {
	s := op.base

	s.VideoFormat = op.videoFormatSelect.Selected
	s.PhotoFormat = op.photoFormatSelect.Selected
	s.Overwrite = op.overwriteCheck.Checked
	s.FastCopy = op.fastCopyCheck.Checked

	s.Codec = model.VideoCodec(op.codecSelect.Selected)
	s.HW = model.HWEncoder(op.hwSelect.Selected)
	s.CRF = parseInt(op.crfEntry.Text, s.CRF)
	s.SpeedPreset = op.encoderPresetSelect.Selected
	s.PhotoQuality = parseInt(op.photoQualityEntry.Text, s.PhotoQuality)

	s.TrimStart = parseFloat(op.trimStartEntry.Text, -1)
	s.TrimEnd = parseFloat(op.trimEndEntry.Text, -1)
	s.Merge = op.mergeCheck.Checked
	s.MergeName = strings.TrimSpace(op.mergeNameEntry.Text)

	s.ResizeW = parseInt(op.resizeWEntry.Text, 0)
	s.ResizeH = parseInt(op.resizeHEntry.Text, 0)
	s.CropW = parseInt(op.cropWEntry.Text, 0)
	s.CropH = parseInt(op.cropHEntry.Text, 0)
	s.CropX = parseInt(op.cropXEntry.Text, 0)
	s.CropY = parseInt(op.cropYEntry.Text, 0)
	s.Rotate = model.Rotation(op.rotateSelect.Selected)
	s.Speed = parseFloat(op.speedEntry.Text, 0)
	s.Portrait = model.PortraitMode(op.portraitSelect.Selected)

	s.WatermarkPath = strings.TrimSpace(op.wmPathEntry.Text)
	s.WatermarkPos = model.Position(op.wmPosSelect.Selected)
	s.WatermarkOpacity = parseInt(op.wmOpacityEntry.Text, s.WatermarkOpacity)
	s.WatermarkScale = parseInt(op.wmScaleEntry.Text, s.WatermarkScale)
	s.TextWatermark = op.textEntry.Text
	s.TextPos = model.Position(op.textPosSelect.Selected)
	s.TextSize = parseInt(op.textSizeEntry.Text, s.TextSize)
	s.TextColor = strings.TrimSpace(op.textColorEntry.Text)
	s.TextBox = op.textBoxCheck.Checked
	s.TextFont = strings.TrimSpace(op.textFontEntry.Text)

	s.StripMetadata = op.stripMetaCheck.Checked
	s.CopyMetadata = op.copyMetaCheck.Checked
	s.MetaTitle = op.metaTitleEntry.Text
	s.MetaComment = op.metaCommentEntry.Text
	s.MetaAuthor = op.metaAuthorEntry.Text
	s.MetaCopyright = op.metaCopyrightEntry.Text

	return s
}

// ApplyPreset merges a preset over the current form state and re-renders
func (op *OptionsPanel) ApplyPreset(p preset.Preset) {
	s := op.Settings()
	p.Apply(&s)
	op.SetSettings(s)
}

// stringsOf converts a slice of string-typed values for a Select widget
func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// intField renders a positive int, leaving zero/negative as empty
func intField(v int) string {
	if v <= 0 {
		return ""
	}
	return strconv.Itoa(v)
}

// floatField renders a positive float, leaving unset values as empty
func floatField(v float64) string {
	if v <= 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseInt(text string, fallback int) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return fallback
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return fallback
	}
	return v
}

func parseFloat(text string, fallback float64) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fallback
	}
	return v
}

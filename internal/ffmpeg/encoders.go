package ffmpeg

import (
	"strconv"
	"strings"

	"github.com/mediabatch/media-converter/internal/model"
)

// Fallback encoder when nothing the user asked for is available
const FallbackEncoder = "libx264"

// cpuEncoderFor returns the software encoder for a codec. AV1 prefers
// SVT-AV1 when the local build carries it.
func (t *Toolchain) cpuEncoderFor(codec model.VideoCodec) string {
	switch codec {
	case model.CodecH264:
		return "libx264"
	case model.CodecH265:
		return "libx265"
	case model.CodecAV1:
		if t.hasEncoder("libsvtav1") {
			return "libsvtav1"
		}
		return "libaom-av1"
	case model.CodecVP9:
		return "libvpx-vp9"
	default:
		return FallbackEncoder
	}
}

// hwEncoders maps vendor preference to codec-specific encoder names
var hwEncoders = map[model.HWEncoder]map[model.VideoCodec]string{
	model.HWNvidia: {
		model.CodecH264: "h264_nvenc",
		model.CodecH265: "hevc_nvenc",
		model.CodecAV1:  "av1_nvenc",
	},
	model.HWIntel: {
		model.CodecH264: "h264_qsv",
		model.CodecH265: "hevc_qsv",
		model.CodecAV1:  "av1_qsv",
	},
	model.HWAMD: {
		model.CodecH264: "h264_amf",
		model.CodecH265: "hevc_amf",
		model.CodecAV1:  "av1_amf",
	},
}

// hwAutoOrder is the vendor probe order for the auto preference
var hwAutoOrder = []model.HWEncoder{model.HWNvidia, model.HWIntel, model.HWAMD}

// ResolveCodec turns the user's codec choice into a concrete codec for the
// output container, switching away from incompatible combinations.
func (t *Toolchain) ResolveCodec(outExt string, choice model.VideoCodec) model.VideoCodec {
	outExt = strings.ToLower(outExt)
	if outExt == ".gif" {
		return "gif"
	}
	if choice == model.CodecAuto || choice == "" {
		if outExt == ".webm" {
			return model.CodecVP9
		}
		return model.CodecH264
	}
	if outExt == ".webm" && choice != model.CodecVP9 && choice != model.CodecAV1 {
		t.warnf("WebM only carries VP9/AV1, switching to VP9")
		return model.CodecVP9
	}
	if choice == model.CodecVP9 {
		switch outExt {
		case ".mp4", ".mov", ".m4v", ".avi":
			t.warnf("VP9 does not fit %s, switching to H.264", outExt)
			return model.CodecH264
		}
	}
	return choice
}

// SelectEncoder picks the ffmpeg encoder name for a codec and hardware
// preference, honoring detected capabilities. The bool result reports
// whether a hardware encoder was selected.
func (t *Toolchain) SelectEncoder(codec model.VideoCodec, hw model.HWEncoder) (string, bool) {
	switch codec {
	case model.CodecH264, model.CodecH265, model.CodecAV1, model.CodecVP9:
	default:
		return FallbackEncoder, false
	}

	cpuFallback := func() (string, bool) {
		encoder := t.cpuEncoderFor(codec)
		if !t.hasEncoder(encoder) {
			t.warnf("encoder %s unavailable, falling back to %s", encoder, FallbackEncoder)
			return FallbackEncoder, false
		}
		return encoder, false
	}

	switch hw {
	case model.HWCPU:
		return cpuFallback()
	case model.HWAuto, "":
		for _, vendor := range hwAutoOrder {
			if enc := hwEncoders[vendor][codec]; enc != "" && t.detectedEncoder(enc) {
				return enc, true
			}
		}
		return cpuFallback()
	default:
		if enc := hwEncoders[hw][codec]; enc != "" && t.hasEncoder(enc) {
			return enc, true
		}
		t.warnf("requested GPU encoder unavailable, using CPU")
		return cpuFallback()
	}
}

// qualityArgs returns the rate-control flags appropriate for an encoder
func qualityArgs(encoder string, crf int) []string {
	q := strconv.Itoa(crf)
	switch {
	case encoder == "libx264" || encoder == "libx265" || encoder == "libsvtav1" || encoder == "libaom-av1":
		return []string{"-crf", q}
	case encoder == "libvpx-vp9":
		return []string{"-crf", q, "-b:v", "0"}
	case strings.HasSuffix(encoder, "_nvenc"):
		return []string{"-rc:v", "vbr", "-cq", q, "-b:v", "0"}
	case strings.HasSuffix(encoder, "_qsv"):
		return []string{"-global_quality", q}
	case strings.HasSuffix(encoder, "_amf"):
		return []string{"-rc", "cqp", "-qp_i", q, "-qp_p", q, "-qp_b", q}
	default:
		return nil
	}
}

// needsYUV420 lists encoders that want an explicit -pix_fmt yuv420p for
// player compatibility
func needsYUV420(encoder string) bool {
	switch encoder {
	case "libx264", "libx265",
		"h264_nvenc", "hevc_nvenc",
		"h264_qsv", "hevc_qsv",
		"h264_amf", "hevc_amf":
		return true
	}
	return false
}

package ffmpeg

import (
	"context"
	"sync"
	"testing"

	"github.com/mediabatch/media-converter/internal/model"
)

func TestResolveCodec(t *testing.T) {
	tests := []struct {
		name   string
		outExt string
		choice model.VideoCodec
		want   model.VideoCodec
	}{
		{"gif forces gif", ".gif", model.CodecH265, "gif"},
		{"auto mp4", ".mp4", model.CodecAuto, model.CodecH264},
		{"auto webm", ".webm", model.CodecAuto, model.CodecVP9},
		{"empty choice", ".mkv", "", model.CodecH264},
		{"webm rejects h264", ".webm", model.CodecH264, model.CodecVP9},
		{"webm keeps av1", ".webm", model.CodecAV1, model.CodecAV1},
		{"vp9 rejected on mp4", ".mp4", model.CodecVP9, model.CodecH264},
		{"vp9 fine on mkv", ".mkv", model.CodecVP9, model.CodecVP9},
		{"explicit kept", ".mp4", model.CodecH265, model.CodecH265},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := NewToolchain("ffmpeg", "ffprobe")
			if got := tc.ResolveCodec(tt.outExt, tt.choice); got != tt.want {
				t.Errorf("ResolveCodec(%q, %q) = %q, want %q", tt.outExt, tt.choice, got, tt.want)
			}
		})
	}
}

func TestSelectEncoder(t *testing.T) {
	tests := []struct {
		name      string
		codec     model.VideoCodec
		hw        model.HWEncoder
		available []string
		want      string
		wantHW    bool
	}{
		{
			name:      "cpu h264",
			codec:     model.CodecH264,
			hw:        model.HWCPU,
			available: []string{"libx264"},
			want:      "libx264",
		},
		{
			name:      "auto picks nvenc",
			codec:     model.CodecH264,
			hw:        model.HWAuto,
			available: []string{"libx264", "h264_nvenc"},
			want:      "h264_nvenc",
			wantHW:    true,
		},
		{
			name:      "auto without hw",
			codec:     model.CodecH265,
			hw:        model.HWAuto,
			available: []string{"libx265"},
			want:      "libx265",
		},
		{
			name:      "nvidia requested but missing",
			codec:     model.CodecH264,
			hw:        model.HWNvidia,
			available: []string{"libx264"},
			want:      "libx264",
		},
		{
			name:      "amd av1",
			codec:     model.CodecAV1,
			hw:        model.HWAMD,
			available: []string{"av1_amf", "libaom-av1"},
			want:      "av1_amf",
			wantHW:    true,
		},
		{
			name:      "av1 prefers svt",
			codec:     model.CodecAV1,
			hw:        model.HWCPU,
			available: []string{"libsvtav1", "libaom-av1"},
			want:      "libsvtav1",
		},
		{
			name:      "av1 falls back to aom",
			codec:     model.CodecAV1,
			hw:        model.HWCPU,
			available: []string{"libaom-av1"},
			want:      "libaom-av1",
		},
		{
			name:      "missing cpu encoder",
			codec:     model.CodecVP9,
			hw:        model.HWCPU,
			available: []string{"libx264"},
			want:      FallbackEncoder,
		},
		{
			name:      "unknown codec",
			codec:     "mystery",
			hw:        model.HWCPU,
			available: []string{"libx264"},
			want:      FallbackEncoder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := NewToolchain("ffmpeg", "ffprobe")
			tc.SetEncoders(tt.available...)
			got, gotHW := tc.SelectEncoder(tt.codec, tt.hw)
			if got != tt.want || gotHW != tt.wantHW {
				t.Errorf("SelectEncoder(%q, %q) = (%q, %v), want (%q, %v)",
					tt.codec, tt.hw, got, gotHW, tt.want, tt.wantHW)
			}
		})
	}
}

func TestQualityArgs(t *testing.T) {
	tests := []struct {
		encoder string
		want    []string
	}{
		{"libx264", []string{"-crf", "23"}},
		{"libvpx-vp9", []string{"-crf", "23", "-b:v", "0"}},
		{"hevc_nvenc", []string{"-rc:v", "vbr", "-cq", "23", "-b:v", "0"}},
		{"h264_qsv", []string{"-global_quality", "23"}},
		{"av1_amf", []string{"-rc", "cqp", "-qp_i", "23", "-qp_p", "23", "-qp_b", "23"}},
		{"gif", nil},
	}

	for _, tt := range tests {
		t.Run(tt.encoder, func(t *testing.T) {
			got := qualityArgs(tt.encoder, 23)
			if len(got) != len(tt.want) {
				t.Fatalf("qualityArgs(%q) = %v, want %v", tt.encoder, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("qualityArgs(%q) = %v, want %v", tt.encoder, got, tt.want)
				}
			}
		})
	}
}

// Detection runs on a background goroutine while conversions select
// encoders, so the capability set must tolerate concurrent access
func TestEncoderSetConcurrentAccess(t *testing.T) {
	tc := NewToolchain("", "")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			tc.SetEncoders("libx264", "h264_nvenc")
			tc.DetectEncoders(context.Background())
			tc.SetPaths("", "")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			tc.SelectEncoder(model.CodecH264, model.HWAuto)
			tc.SelectEncoder(model.CodecAV1, model.HWCPU)
		}
	}()
	wg.Wait()
}

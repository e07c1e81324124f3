package audio

import (
	"os"
	"runtime"
	"strconv"
)

// EnvDevice overrides output device detection. "none" reports no device;
// any other non-empty value names the device to use and reports present.
const EnvDevice = "HELIX_AUDIO_DEVICE"

// EnvMaxRate overrides the highest sample rate the output device accepts.
const EnvMaxRate = "HELIX_AUDIO_MAX_RATE"

// defaultMaxRate is what every platform mixer resamples up to.
const defaultMaxRate = 48000

// SampleRateSettings configures the CheckSampleRates probe.
type SampleRateSettings struct {
	// MinRate is the lowest sample rate the host needs the device to accept.
	MinRate int64 `helix:"min_rate"`
}

func maxSampleRate() int64 {
	if v := os.Getenv(EnvMaxRate); v != "" {
		if rate, err := strconv.ParseInt(v, 10, 64); err == nil {
			return rate
		}
	}
	if !hasOutputDevice() {
		return 0
	}
	return defaultMaxRate
}

func supportsSampleRate(minRate int64) bool {
	return maxSampleRate() >= minRate
}

func hasOutputDevice() bool {
	if v := os.Getenv(EnvDevice); v != "" {
		return v != "none"
	}

	switch runtime.GOOS {
	case "linux":
		// ALSA exposes sound devices under /dev/snd.
		entries, err := os.ReadDir("/dev/snd")
		return err == nil && len(entries) > 0
	case "darwin", "windows":
		// CoreAudio and WASAPI always provide a default output endpoint.
		return true
	default:
		return false
	}
}

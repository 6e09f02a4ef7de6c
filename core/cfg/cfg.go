// Package cfg loads the configuration from the default configuration file.
package cfg

import (
	"github.com/ftl/hamradio/cfg"

	"github.com/ftl/gnsscore/core"
)

const (
	samplingFrequency     cfg.Key = "gnsscore.samplingFrequency"
	intermediateFrequency cfg.Key = "gnsscore.intermediateFrequency"
	dataType              cfg.Key = "gnsscore.dataType"
	input                 cfg.Key = "gnsscore.input"
	prn                   cfg.Key = "gnsscore.prn"
	dopplerRangeFrom      cfg.Key = "gnsscore.dopplerRange.from"
	dopplerRangeTo        cfg.Key = "gnsscore.dopplerRange.to"
	dopplerStep           cfg.Key = "gnsscore.dopplerStep"
	integration           cfg.Key = "gnsscore.integration"
	fftBackend            cfg.Key = "gnsscore.fftBackend"
	fftWorkers            cfg.Key = "gnsscore.fftWorkers"
	epochsPerSecond       cfg.Key = "gnsscore.epochsPerSecond"
	epochIntegration      cfg.Key = "gnsscore.epochIntegration"
	centerFrequency       cfg.Key = "gnsscore.rtlsdr.centerFrequency"
	frequencyCorrection   cfg.Key = "gnsscore.rtlsdr.frequencyCorrection"
)

// Load the configuration from the default configuration file. Missing values are set to
// their defaults.
func Load() (core.Configuration, error) {
	configuration, err := cfg.LoadDefault()
	if err != nil {
		return core.Configuration{}, err
	}
	return fromGetter(configuration.Get)
}

type getter func(key cfg.Key, defaultValue interface{}) interface{}

func fromGetter(get getter) (core.Configuration, error) {
	defaults := Static()

	dtype, err := core.ParseDataType(get(dataType, defaults.DataType.String()).(string))
	if err != nil {
		return core.Configuration{}, err
	}

	result := core.Configuration{
		SamplingFrequency:     core.Frequency(get(samplingFrequency, float64(defaults.SamplingFrequency)).(float64)),
		IntermediateFrequency: core.Frequency(get(intermediateFrequency, float64(defaults.IntermediateFrequency)).(float64)),
		DataType:              dtype,
		Input:                 get(input, defaults.Input).(string),
		PRN:                   int(get(prn, float64(defaults.PRN)).(float64)),
		DopplerRange: core.FrequencyRange{
			From: core.Frequency(get(dopplerRangeFrom, float64(defaults.DopplerRange.From)).(float64)),
			To:   core.Frequency(get(dopplerRangeTo, float64(defaults.DopplerRange.To)).(float64)),
		}.Normalized(),
		DopplerStep:           core.Frequency(get(dopplerStep, float64(defaults.DopplerStep)).(float64)),
		Integration:           int(get(integration, float64(defaults.Integration)).(float64)),
		FFTBackend:            get(fftBackend, defaults.FFTBackend).(string),
		FFTWorkers:            int(get(fftWorkers, float64(defaults.FFTWorkers)).(float64)),
		EpochsPerSecond:       int(get(epochsPerSecond, float64(defaults.EpochsPerSecond)).(float64)),
		EpochIntegration:      int(get(epochIntegration, float64(defaults.EpochIntegration)).(float64)),
		CenterFrequency:       int(get(centerFrequency, float64(defaults.CenterFrequency)).(float64)),
		FrequencyCorrection:   int(get(frequencyCorrection, float64(defaults.FrequencyCorrection)).(float64)),
	}

	return result, nil
}

// Static returns the default configuration: a synthetic IF signal of PRN 1 at 4.092MHz
// sampling frequency.
func Static() core.Configuration {
	return core.Configuration{
		SamplingFrequency:     4092000,
		IntermediateFrequency: 1023000,
		DataType:              core.DataReal,
		Input:                 "tone",
		PRN:                   1,
		DopplerRange:          core.FrequencyRange{From: -5000, To: 5000},
		DopplerStep:           500,
		Integration:           1,
		FFTBackend:            "gonum",
		FFTWorkers:            0,
		EpochsPerSecond:       1,
		EpochIntegration:      1,
		CenterFrequency:       1575420000,
		FrequencyCorrection:   0,
	}
}

package orb

import "fmt"

// Dataset identifies one time-series dataset served by the Local API.
// The zero value is not a valid dataset.
type Dataset int

// Datasets served by the Local API.
const (
	DatasetScores1m Dataset = iota + 1
	DatasetResponsiveness1s
	DatasetResponsiveness15s
	DatasetResponsiveness1m
	DatasetWebResponsiveness
	DatasetSpeedResults
	DatasetWifiLink1s
	DatasetWifiLink15s
	DatasetWifiLink1m
)

// WireName returns the dataset name used in Local API request paths.
func (d Dataset) WireName() string {
	switch d {
	case DatasetScores1m:
		return "scores_1m"
	case DatasetResponsiveness1s:
		return "responsiveness_1s"
	case DatasetResponsiveness15s:
		return "responsiveness_15s"
	case DatasetResponsiveness1m:
		return "responsiveness_1m"
	case DatasetWebResponsiveness:
		return "web_responsiveness_results"
	case DatasetSpeedResults:
		return "speed_results"
	case DatasetWifiLink1s:
		return "wifi_link_1s"
	case DatasetWifiLink15s:
		return "wifi_link_15s"
	case DatasetWifiLink1m:
		return "wifi_link_1m"
	}
	return "unknown"
}

// Key returns the dataset's key in aggregate results. Keys match wire names
// except for web responsiveness, which is keyed web_responsiveness.
func (d Dataset) Key() string {
	if d == DatasetWebResponsiveness {
		return "web_responsiveness"
	}
	return d.WireName()
}

func (d Dataset) String() string {
	return d.WireName()
}

// ParseDataset resolves a dataset from its wire name or aggregate key.
func ParseDataset(name string) (Dataset, error) {
	for _, dataset := range AllDatasets() {
		if name == dataset.WireName() || name == dataset.Key() {
			return dataset, nil
		}
	}
	return 0, fmt.Errorf("unknown dataset %q", name)
}

// AllDatasets returns every dataset the Local API serves, in a stable order.
func AllDatasets() []Dataset {
	return []Dataset{
		DatasetScores1m,
		DatasetResponsiveness1s,
		DatasetResponsiveness15s,
		DatasetResponsiveness1m,
		DatasetWebResponsiveness,
		DatasetSpeedResults,
		DatasetWifiLink1s,
		DatasetWifiLink15s,
		DatasetWifiLink1m,
	}
}

// Granularity selects the time bucket size for bucketed datasets.
type Granularity string

// Time bucket sizes the Local API serves.
const (
	Granularity1s  Granularity = "1s"
	Granularity15s Granularity = "15s"
	Granularity1m  Granularity = "1m"
)

// ParseGranularity validates a granularity token.
func ParseGranularity(value string) (Granularity, error) {
	switch Granularity(value) {
	case Granularity1s, Granularity15s, Granularity1m:
		return Granularity(value), nil
	}
	return "", fmt.Errorf("granularity %q is not supported (want 1s, 15s, or 1m)", value)
}

// ResponsivenessDataset returns the responsiveness dataset for a
// granularity. Unrecognized granularities fall back to the 1-minute bucket.
func ResponsivenessDataset(g Granularity) Dataset {
	switch g {
	case Granularity1s:
		return DatasetResponsiveness1s
	case Granularity15s:
		return DatasetResponsiveness15s
	}
	return DatasetResponsiveness1m
}

// WifiLinkDataset returns the Wi-Fi link dataset for a granularity.
// Unrecognized granularities fall back to the 1-minute bucket.
func WifiLinkDataset(g Granularity) Dataset {
	switch g {
	case Granularity1s:
		return DatasetWifiLink1s
	case Granularity15s:
		return DatasetWifiLink15s
	}
	return DatasetWifiLink1m
}

// NetworkType identifies the sensor's network interface medium. Values
// match the network_type dimension in dataset records.
type NetworkType int

// Network interface media reported by the sensor.
const (
	NetworkTypeUnknown  NetworkType = 0
	NetworkTypeWiFi     NetworkType = 1
	NetworkTypeEthernet NetworkType = 2
	NetworkTypeOther    NetworkType = 3
)

func (t NetworkType) String() string {
	switch t {
	case NetworkTypeWiFi:
		return "Wi-Fi"
	case NetworkTypeEthernet:
		return "Ethernet"
	case NetworkTypeOther:
		return "Other"
	}
	return "Unknown"
}

package domain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/orbnet/internal/orb"
)

// datasetCatalogURI addresses the dataset catalog resource.
const datasetCatalogURI = "orb://datasets"

// DatasetCatalogEntry describes one queryable dataset.
type DatasetCatalogEntry struct {
	Key               string `json:"key"`
	WireName          string `json:"wire_name"`
	Granularity       string `json:"granularity,omitempty"`
	AlwaysInAggregate bool   `json:"always_in_aggregate"`
}

// DatasetCatalogPayload is the dataset catalog resource body.
type DatasetCatalogPayload struct {
	Datasets     []DatasetCatalogEntry `json:"datasets"`
	NetworkTypes map[string]string     `json:"network_types"`
}

// DatasetCatalogResource defines the readable catalog of dataset kinds.
func DatasetCatalogResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "dataset_catalog",
		Description: "Catalog of queryable Orb datasets with wire names, granularities, and aggregate membership",
		MIMEType:    "application/json",
		URI:         datasetCatalogURI,
	}
}

// DatasetCatalogResourceHandler serves the dataset catalog.
func DatasetCatalogResourceHandler() mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := datasetCatalogURI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}

		payload := DatasetCatalogPayload{
			NetworkTypes: networkTypeLabels(),
		}
		always := map[orb.Dataset]bool{
			orb.DatasetScores1m:          true,
			orb.DatasetResponsiveness1m:  true,
			orb.DatasetWebResponsiveness: true,
			orb.DatasetSpeedResults:      true,
			orb.DatasetWifiLink1m:        true,
		}
		for _, dataset := range orb.AllDatasets() {
			payload.Datasets = append(payload.Datasets, DatasetCatalogEntry{
				Key:               dataset.Key(),
				WireName:          dataset.WireName(),
				Granularity:       datasetGranularity(dataset),
				AlwaysInAggregate: always[dataset],
			})
		}

		body, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode dataset catalog: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(body),
				},
			},
		}, nil
	}
}

func datasetGranularity(dataset orb.Dataset) string {
	switch dataset {
	case orb.DatasetScores1m, orb.DatasetResponsiveness1m, orb.DatasetWifiLink1m:
		return string(orb.Granularity1m)
	case orb.DatasetResponsiveness15s, orb.DatasetWifiLink15s:
		return string(orb.Granularity15s)
	case orb.DatasetResponsiveness1s, orb.DatasetWifiLink1s:
		return string(orb.Granularity1s)
	}
	return ""
}

func networkTypeLabels() map[string]string {
	labels := make(map[string]string, 4)
	for _, networkType := range []orb.NetworkType{
		orb.NetworkTypeUnknown,
		orb.NetworkTypeWiFi,
		orb.NetworkTypeEthernet,
		orb.NetworkTypeOther,
	} {
		labels[fmt.Sprintf("%d", int(networkType))] = networkType.String()
	}
	return labels
}

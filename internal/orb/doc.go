// Package orb speaks the Orb sensor Local Data API.
//
// The Local API serves time-series network-quality datasets over HTTP as
// JSON arrays of flat records. Dataset names, granularities, and the
// network-type dimension values are fixed by the sensor firmware; this
// package carries those contracts and a Client that fetches records on
// behalf of a caller identity.
package orb

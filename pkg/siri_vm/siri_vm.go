package siri_vm

import "encoding/json"

// Document is a decoded SIRI vehicle-monitoring response as served by the Bus Time JSON API.
// Optional parts of the response are pointers so that absence can be told apart from zero values.
type Document struct {
	Siri *Siri

	raw json.RawMessage
}

type Siri struct {
	ServiceDelivery *ServiceDelivery
}

type ServiceDelivery struct {
	VehicleMonitoringDelivery []*VehicleMonitoringDelivery
}

type VehicleMonitoringDelivery struct {
	ValidUntil string

	VehicleActivity []*VehicleActivity
}

// Raw returns the response body the document was decoded from.
func (d *Document) Raw() json.RawMessage {
	return d.raw
}

// Delivery returns the first vehicle monitoring delivery, or nil if the response has none.
func (d *Document) Delivery() *VehicleMonitoringDelivery {
	if d.Siri == nil || d.Siri.ServiceDelivery == nil || len(d.Siri.ServiceDelivery.VehicleMonitoringDelivery) == 0 {
		return nil
	}

	return d.Siri.ServiceDelivery.VehicleMonitoringDelivery[0]
}

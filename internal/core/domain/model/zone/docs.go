// Package zone provides the ServiceZone aggregate root: radius- or
// polygon-shaped geographic areas with per-zone pricing, advertised
// delivery-time windows, and an overlap priority.
//
// Geometry is validated at construction, never at query time: Contains and
// DeliveryFee assume a well-formed zone. A point exactly on a polygon edge
// counts as outside.
package zone

// Package almaclient is a typed client for the Ex Libris Alma REST APIs.
//
// It provides:
//
// - Resource services for bibs, holdings and items (get/list/create/update/delete)
// - An analytics service for report retrieval and catalog path listing
// - A normalization pipeline that folds JSON and XML responses into one canonical shape
// - Declarative validation with a stable error model (JSON Pointer path, code, message)
//
// Design policy:
// - Keep the transport and error surface in the root package.
// - Place scalar coercion under coerce/, entity schemas under schema/,
//   response shaping under normalize/, typed records under model/, and the
//   CLI under cmd/almactl.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	cfg, err := almaclient.LoadConfig("alma.yml")
//	c, err := almaclient.New(cfg)
//	bib, err := c.Bibs().Get(ctx, "9911234567890", almaclient.GetBibOptions{})
//
//	rep, err := c.Analytics().GetReport(ctx, almaclient.ReportRequest{
//		Path: "/shared/University/Reports/Circulation",
//	})
package almaclient

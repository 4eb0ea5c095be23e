// Package web carries the embedded site: public pages, the admin panel and
// the initial materials data set.
package web

import "embed"

//go:embed public admin
var Files embed.FS

//go:embed data/materials.json
var SeedMaterials []byte

package mcp

// --- Tool Arguments ---

type NearestArgs struct {
	SystemName string  `json:"system_name,omitempty" jsonschema:"Name of the system to search around. Mutually exclusive with x/y/z."`
	X          float64 `json:"x,omitempty" jsonschema:"Origin X coordinate"`
	Y          float64 `json:"y,omitempty" jsonschema:"Origin Y coordinate"`
	Z          float64 `json:"z,omitempty" jsonschema:"Origin Z coordinate"`
	UseOrigin  bool    `json:"use_origin,omitempty" jsonschema:"Set true to search around the x/y/z point instead of a system name"`
	Radius     float64 `json:"radius" jsonschema:"Search radius,required"`
	Count      int     `json:"count,omitempty" jsonschema:"Max number of systems to return (default 10)"`
}

type NearestResult struct {
	Systems []string `json:"systems"` // "Name (id) at distance 1.24"
}

type PathArgs struct {
	StartID uint32 `json:"start_id" jsonschema:"Id of the start system,required"`
	EndID   uint32 `json:"end_id" jsonschema:"Id of the destination system,required"`
}

type PathResult struct {
	Found bool   `json:"found"`
	Route string `json:"route"` // "Alpha -> Beacon -> Cinder (2 jumps)"
}

type SweepArgs struct {
	SystemName string  `json:"system_name,omitempty" jsonschema:"Name of the system at the sweep center. Mutually exclusive with x/y/z."`
	X          float64 `json:"x,omitempty"`
	Y          float64 `json:"y,omitempty"`
	Z          float64 `json:"z,omitempty"`
	UseCenter  bool    `json:"use_center,omitempty" jsonschema:"Set true to sweep around the x/y/z point instead of a system name"`
	Radius     float64 `json:"radius" jsonschema:"Sweep radius,required"`
}

type SweepResult struct {
	Order         []string `json:"order"`
	TotalDistance float64  `json:"total_distance"`
}

type ResolveArgs struct {
	Name   string `json:"name" jsonschema:"System name or name prefix to resolve,required"`
	Prefix bool   `json:"prefix,omitempty" jsonschema:"If true, treat name as a prefix and return all matches"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Max matches for prefix search (default 10)"`
}

type ResolveResult struct {
	Systems []string `json:"systems"`
}

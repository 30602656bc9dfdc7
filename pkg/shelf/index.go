package shelf

// IndexMetadata describes one secondary index a cluster has defined over a
// DataSet's bin. The client never plans index queries itself (Non-goal);
// this is read-only metadata a caller or the query builder can consult to
// know which filters a Query can push down to the server.
type IndexMetadata struct {
	Namespace string
	Set       string
	Bin       string
	Name      string
	Type      IndexType
}

// IndexType is the value shape a secondary index was built over.
type IndexType string

const (
	IndexTypeNumeric IndexType = "NUMERIC"
	IndexTypeString  IndexType = "STRING"
	IndexTypeGeo2D   IndexType = "GEO2DSPHERE"
	IndexTypeList    IndexType = "LIST"
	IndexTypeMapKeys IndexType = "MAPKEYS"
	IndexTypeMapVals IndexType = "MAPVALUES"
)

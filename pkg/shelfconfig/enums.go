package shelfconfig

// NodeCategory enumerates the replica placement preference order.
type NodeCategory string

const (
	NodeCategoryMaster               NodeCategory = "MASTER"
	NodeCategoryMasterOrReplica      NodeCategory = "MASTER_OR_REPLICA"
	NodeCategoryMasterOrReplicaInRack NodeCategory = "MASTER_OR_REPLICA_IN_RACK"
	NodeCategoryAnyReplica           NodeCategory = "ANY_REPLICA"
	NodeCategoryReplicaInRack        NodeCategory = "REPLICA_IN_RACK"
	NodeCategoryRandom               NodeCategory = "RANDOM"
	NodeCategoryRandomInRack         NodeCategory = "RANDOM_IN_RACK"
)

// ReadModeSC enumerates strong-consistency read modes.
type ReadModeSC string

const (
	ReadModeSCLinearize       ReadModeSC = "LINEARIZE"
	ReadModeSCAllowReplica    ReadModeSC = "ALLOW_REPLICA"
	ReadModeSCAllowUnavailable ReadModeSC = "ALLOW_UNAVAILABLE"
	ReadModeSCSession         ReadModeSC = "SESSION"
)

// ReadModeAP enumerates availability-mode read modes.
type ReadModeAP string

const (
	ReadModeAPOne ReadModeAP = "ONE"
	ReadModeAPAll ReadModeAP = "ALL"
)

// ExceptionPolicy enumerates how per-record errors surface from a batch.
type ExceptionPolicy string

const (
	ExceptionPolicyThrowAny             ExceptionPolicy = "THROW_ON_ANY_ERROR"
	ExceptionPolicyReturnAllPossible    ExceptionPolicy = "RETURN_AS_MANY_RESULTS_AS_POSSIBLE"
)

package game

// Fixed instruction costs for the action surface. The sandbox charges the
// action's base cost plus CallOverhead for every call an agent program makes,
// so identical logic reports identical usage on every host. Costs are never
// derived from wall-clock time.
//
// Self-sensing calls (id, team, location, round number) have a base cost of
// zero and are charged only the call overhead. Yielding is a control point,
// not an action, and is free.
const (
	// CallOverhead is added to every action call on top of its base cost.
	CallOverhead = 2

	CostSenseRobots = 10
	CostSenseTile   = 5
	CostMove        = 10
	CostAttack      = 20
	CostClearRubble = 25
	CostBuild       = 40
	CostBroadcast   = 100
	CostReadSignals = 10
	CostObservation = 5
	CostCheck       = 1
)

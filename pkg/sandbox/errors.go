package sandbox

import "fmt"

// LoadError reports that an agent program could not be found, parsed, or
// instrumented. The robot it was meant for is treated as never spawned; the
// match itself is unaffected.
type LoadError struct {
	Identity string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load agent program %q: %v", e.Identity, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// RestrictedCallError reports that an agent program invoked a developer-only
// action while debug methods were disabled. It terminates the offending
// instance only.
type RestrictedCallError struct {
	Identity string
	Action   string
}

func (e *RestrictedCallError) Error() string {
	return fmt.Sprintf("agent program %q called restricted action %q with debug methods disabled", e.Identity, e.Action)
}

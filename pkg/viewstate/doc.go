// Package viewstate implements the load/derive/render contract shared by
// every data-bound screen: a screen is fully Loading, fully Success, or
// fully Error, never a mix.
//
// A Reconciler wraps a screen's load function, which issues its API calls
// as an ordered sequence (later calls may depend on earlier results). The
// reconciler:
//
//   - gates overlapping reloads with an in-flight flag,
//   - discards results that arrive after the screen moved on (generation
//     counter; there is no request cancellation),
//   - on apiclient.ErrUnauthorized clears the session store and signals
//     navigation back to the unauthenticated entry point instead of
//     rendering an error,
//   - maps connectivity failures to "Please connect to the internet" and
//     everything else to a short generic message.
//
// Non-critical secondary fetches (an earner count for the selected badge)
// go through Secondary, which degrades to a placeholder value on any
// failure rather than leaving the Success state.
package viewstate

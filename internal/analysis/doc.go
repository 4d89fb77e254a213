// Package analysis computes the composite CBAM vulnerability risk index
// from the normalized comprehensive table: weighted sums per scenario,
// sensitivity analysis across the scenario set, risk-tier
// categorization, and per-country insights (dominant factor, rankings,
// summary statistics, scenario comparison, indicator correlations).
//
// Every operation is a pure function of its inputs. Scenario runs share
// no state, so sensitivity analysis is order-invariant and can
// optionally run scenarios in parallel.
package analysis

// Package revmatch builds reviewer-assignment programs for conference peer
// review and improves solved assignments by trading.
//
// The work is split across small packages:
//
//	lpmodel/  - variable registry, equations, objective and CPLEX-LP writer
//	assign/   - the assignment program: capacities, coverage, co-reviews,
//	            seniority, regions, bidding cycles, workload distribution
//	ttc/      - top-trading-cycle reallocation of a solved assignment
//	tables/   - CSV readers and writers for normalized conference tables
//	synth/    - deterministic synthetic conferences for tests and benchmarks
//	logging/  - the Logger interface and its slog adapter
//
// cmd/revmatch wires them together:
//
//	revmatch build -config cfg.yml -data ./conf -out out/model
//	revmatch ttc -assignment out/assignment.csv -prefs conf/preferences.csv
//
// The builder only writes the program; solving it is left to an external
// MILP solver that reads the LP format.
package revmatch

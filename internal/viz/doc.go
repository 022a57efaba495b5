// Package viz renders integration results in the terminal.
//
// Static output goes through asciigraph ([PlotSolution], [PlotError],
// [PlotConvergence]) and lipgloss ([MetricsTable], [ProgressBar],
// [Sparkline]). [Replay] is a Bubble Tea model that reveals a stored
// trajectory sample by sample next to the exact solution.
//
// # Key Bindings
//
//	Space - Pause/Resume replay
//	R     - Restart from the first sample
//	+/-   - Change replay speed
//	T     - Cycle color themes
//	Q     - Quit
package viz

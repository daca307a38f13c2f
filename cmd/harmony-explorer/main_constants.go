package main

// Default command-line flag values
const (
	defaultDevice    = "null"
	defaultLogLevel  = "warn"
	defaultLogFormat = "console"
	defaultWAVPath   = "harmony.wav"
	appName          = "harmony-explorer"
)

// Report formatting
const (
	maxMarkersShown = 40
	sparkWidth      = 60
	secondsToMillis = 1000.0
)

// Shell prompt and command names
const (
	prompt = "harmony> "

	cmdAdd    = "add"
	cmdNote   = "note"
	cmdRemove = "rm"
	cmdFreq   = "freq"
	cmdAmp    = "amp"
	cmdPhase  = "phase"
	cmdWindow = "window"
	cmdTol    = "tol"
	cmdPlay   = "play"
	cmdList   = "list"
	cmdPlot   = "plot"
	cmdKeys   = "keys"
	cmdHelp   = "help"
	cmdQuit   = "quit"
	cmdExit   = "exit"
)

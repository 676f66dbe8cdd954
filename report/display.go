package report

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// message is the common interface for everything the reporter can display.
type message interface {
	display()
	isError() bool
}

// blockMessage is an error or warning scoped to a single block declaration.
type blockMessage struct {
	BlockName string
	Message   string
	IsError   bool
}

func (bm *blockMessage) display() {
	if bm.IsError {
		ErrorStyleBG.Print("Block Error")
		fmt.Print(" ")
		InfoColorFG.Print(bm.BlockName)
		ErrorColorFG.Println(" " + bm.Message)
	} else {
		WarnStyleBG.Print("Block Warning")
		fmt.Print(" ")
		InfoColorFG.Print(bm.BlockName)
		WarnColorFG.Println(" " + bm.Message)
	}
}

func (bm *blockMessage) isError() bool {
	return bm.IsError
}

// fileMessage is an error or warning scoped to one source file during the
// metadata-collection phase.
type fileMessage struct {
	Path    string
	Message string
	IsError bool
}

func (fm *fileMessage) display() {
	if fm.IsError {
		ErrorStyleBG.Print("File Error")
		fmt.Print(" ")
		InfoColorFG.Print(fm.Path)
		ErrorColorFG.Println(" " + fm.Message)
	} else {
		WarnStyleBG.Print("File Warning")
		fmt.Print(" ")
		InfoColorFG.Print(fm.Path)
		WarnColorFG.Println(" " + fm.Message)
	}
}

func (fm *fileMessage) isError() bool {
	return fm.IsError
}

// configMessage is an error in project or compiler configuration.
type configMessage struct {
	Kind    string
	Message string
}

func (cm *configMessage) display() {
	ErrorStyleBG.Print(cm.Kind + " Error")
	ErrorColorFG.Println(" " + cm.Message)
}

func (cm *configMessage) isError() bool {
	return true
}

// -----------------------------------------------------------------------------

func displayFatalError(msg string) {
	fmt.Print("\n")
	ErrorStyleBG.Print("Fatal Error ")
	ErrorColorFG.Println(msg)
}

// displayCompileHeader displays the compiler information before compilation
// starts.
func displayCompileHeader(project, targetVersion string) {
	fmt.Print("ts2scl ")
	InfoColorFG.Print(project)
	fmt.Print(" -- target: ")
	InfoColorFG.Println("TIA " + targetVersion)
}

// displayCompilationFinished displays the closing compilation message.
func displayCompilationFinished(success bool, artifactCount, errorCount, warningCount int, elapsed time.Duration) {
	fmt.Print("\n")

	if success {
		SuccessColorFG.Print("All done! ")
	} else {
		ErrorColorFG.Print("Oh no! ")
	}

	fmt.Printf("%d blocks generated (", artifactCount)

	switch errorCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Print(" errors, ")
	case 1:
		ErrorColorFG.Print(1)
		fmt.Print(" error, ")
	default:
		ErrorColorFG.Print(errorCount)
		fmt.Print(" errors, ")
	}

	switch warningCount {
	case 0:
		SuccessColorFG.Print(0)
	default:
		WarnColorFG.Print(warningCount)
	}

	if warningCount == 1 {
		fmt.Printf(" warning) in %.3fs\n", elapsed.Seconds())
	} else {
		fmt.Printf(" warnings) in %.3fs\n", elapsed.Seconds())
	}
}

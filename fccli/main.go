package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fontist/fontisan/ot"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'fontisan.cli'
func tracer() tracing.Trace {
	return tracing.Select("fontisan.cli")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":    "go",
		"trace.fontisan.cli": "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	collpath := flag.String("collection", "", "Collection file (TTC/OTC) to open")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError) // will set the correct level later
	pterm.Info.Println("Welcome to the font collection CLI")
	//
	// set up REPL
	repl, err := readline.New("fc > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl}
	//
	// open collection, if provided by flag
	if *collpath != "" {
		if err := intp.open(*collpath); err != nil {
			tracer().Errorf(err.Error())
			os.Exit(4)
		}
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D")
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl *readline.Instance
	coll *ot.Collection
	path string
}

func (intp *Intp) String() string {
	if intp == nil || intp.coll == nil {
		return "()"
	}
	return fmt.Sprintf("( %s, %d fonts )", intp.path, intp.coll.NumFonts())
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.execute(line)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

func (intp *Intp) execute(line string) (quit bool, err error) {
	words := strings.Fields(line)
	cmd, args := words[0], words[1:]
	switch cmd {
	case "quit", "exit":
		return true, nil
	case "help":
		printHelp()
	case "open":
		if len(args) != 1 {
			return false, errors.New("usage: open <collection-file>")
		}
		err = intp.open(args[0])
	case "fonts":
		if err = intp.checkOpen(); err == nil {
			printFontList(intp.coll)
		}
	case "tables":
		var f *ot.Font
		if f, err = intp.memberArg(args); err == nil {
			printTableList(f)
		}
	case "stats":
		if err = intp.checkOpen(); err == nil {
			err = printStats(intp.coll)
		}
	case "extract":
		if len(args) != 2 {
			return false, errors.New("usage: extract <font-index> <output-file>")
		}
		var f *ot.Font
		if f, err = intp.memberArg(args[:1]); err == nil {
			err = extractMember(f, args[1])
		}
	default:
		return false, fmt.Errorf("unknown command %q, try 'help'", cmd)
	}
	return false, err
}

func (intp *Intp) open(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	coll, err := ot.ParseCollection(b)
	if err != nil {
		return err
	}
	intp.coll = coll
	intp.path = path
	pterm.Info.Printf("opened %s\n", coll.String())
	return nil
}

func (intp *Intp) checkOpen() error {
	if intp.coll == nil {
		return errors.New("no collection open, use 'open <file>'")
	}
	return nil
}

func (intp *Intp) memberArg(args []string) (*ot.Font, error) {
	if err := intp.checkOpen(); err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, errors.New("font index argument required")
	}
	i, err := strconv.Atoi(args[0])
	if err != nil || i < 0 || i >= intp.coll.NumFonts() {
		return nil, fmt.Errorf("invalid font index %q", args[0])
	}
	return intp.coll.Fonts[i], nil
}

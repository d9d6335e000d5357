package main

import (
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	logOutput io.Writer = os.Stdout

	logInfoColor  = color.New(color.FgGreen)
	logWarnColor  = color.New(color.FgYellow)
	logErrorColor = color.New(color.FgRed)
)

func logInfo(format string, a ...interface{}) {
	logInfoColor.Fprintf(logOutput, "[+] "+format+"\n", a...)
}

func logWarn(format string, a ...interface{}) {
	logWarnColor.Fprintf(logOutput, "[*] "+format+"\n", a...)
}

func logError(format string, a ...interface{}) {
	logErrorColor.Fprintf(logOutput, "[!] "+format+"\n", a...)
}

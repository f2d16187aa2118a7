// Command jpegconceal embeds or extracts a histogram-preserving hidden
// payload in a baseline JPEG's quantized DCT coefficients. Its flag
// parsing and colored status lines are grounded on the teacher's
// cmd/destego/main.go.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/sebadur/jpeg-steganography/pkg/conceal"
	"github.com/sebadur/jpeg-steganography/pkg/filehandler"
	"github.com/sebadur/jpeg-steganography/pkg/report"
)

var (
	printInfo    = color.New(color.FgBlue).SprintFunc()
	printSuccess = color.New(color.FgGreen).SprintFunc()
	printWarning = color.New(color.FgYellow).SprintFunc()
	printError   = color.New(color.FgRed).SprintFunc()
	printAlert   = color.New(color.FgRed, color.Bold).SprintFunc()
)

// referencePayload is the reference driver's default message: "Hello
// World!" zero-padded to 2000 bytes.
func referencePayload() []byte {
	buf := make([]byte, 2000)
	copy(buf, []byte("Hello World!"))
	return buf
}

func main() {
	var (
		in       = flag.String("in", "", "cover JPEG to read")
		out      = flag.String("out", "", "destination JPEG to write (embed mode)")
		message  = flag.String("message", "", "payload to embed; defaults to the 2000-byte reference payload")
		extract  = flag.Bool("extract", false, "extract the payload from -in instead of embedding")
		dir      = flag.String("dir", "", "batch-embed the reference payload into every JPEG in this directory")
		outdir   = flag.String("outdir", "out", "output directory for -dir batch mode")
		workers  = flag.Int("workers", 4, "worker pool size for -dir batch mode")
		verbose  = flag.Bool("verbose", false, "print per-run diagnostics")
	)
	flag.Parse()

	fmt.Println(printInfo("jpegconceal — coefficient-histogram JPEG steganography"))

	switch {
	case *dir != "":
		os.Exit(runBatch(*dir, *outdir, *workers, *verbose))
	case *extract:
		os.Exit(runExtract(*in, *verbose))
	default:
		os.Exit(runEmbed(*in, *out, *message, *verbose))
	}
}

func runEmbed(in, out, message string, verbose bool) int {
	if in == "" || out == "" {
		fmt.Println(printError("[-] -in and -out are required for embed mode"))
		return 1
	}
	cover, err := filehandler.ReadFileBytes(in)
	if err != nil {
		fmt.Println(printError("[-] " + err.Error()))
		return 1
	}

	e, err := conceal.NewEmbedder(cover)
	if code := selfCheckExit(err); code != 0 {
		return code
	}
	if err != nil {
		fmt.Println(printError("[-] " + err.Error()))
		return 1
	}

	rep := &report.Report{Filename: in}
	rep.CapacityBefore = e.CurrentSize()

	payload := []byte(message)
	if message == "" {
		payload = referencePayload()
	}

	outBytes, err := e.Write(payload)
	if err != nil {
		fmt.Println(printError("[-] embed failed: " + err.Error()))
		return 1
	}

	if err := filehandler.SaveFile(outBytes, out); err != nil {
		fmt.Println(printError("[-] " + err.Error()))
		return 1
	}

	var recovered []byte
	e2, err := conceal.NewEmbedder(outBytes)
	if err == nil {
		rep.CapacityAfter = e2.CurrentSize()
		if extracted, err := e2.Read(); err == nil {
			rep.RecordParity(extracted)
			recovered = extracted[:min(len(payload), len(extracted))]
		}
	}

	fmt.Println(printSuccess(fmt.Sprintf("[+] embedded %d bytes into %s", len(payload), out)))
	fmt.Printf("    capacity before: %d bytes, after: %d bytes\n", rep.CapacityBefore, rep.CapacityAfter)
	fmt.Printf("    extracted: %q\n", strings.TrimRight(string(recovered), "\x00"))
	fmt.Printf("    LSB parity of recovered payload: %d zeros, %d ones\n", rep.LSBParityZeros, rep.LSBParityOnes)
	if verbose {
		for _, f := range rep.Findings {
			fmt.Println(printWarning("[*] " + f))
		}
	}
	return 0
}

func runExtract(in string, verbose bool) int {
	if in == "" {
		fmt.Println(printError("[-] -in is required for -extract"))
		return 1
	}
	cover, err := filehandler.ReadFileBytes(in)
	if err != nil {
		fmt.Println(printError("[-] " + err.Error()))
		return 1
	}

	e, err := conceal.NewEmbedder(cover)
	if code := selfCheckExit(err); code != 0 {
		return code
	}
	if err != nil {
		fmt.Println(printError("[-] " + err.Error()))
		return 1
	}

	data, err := e.Read()
	if err != nil {
		fmt.Println(printError("[-] extract failed: " + err.Error()))
		return 1
	}

	fmt.Println(printSuccess(fmt.Sprintf("[+] extracted %d bytes", len(data))))
	fmt.Printf("    %q\n", string(data))
	if verbose {
		fmt.Printf("    capacity: %d bytes\n", e.CurrentSize())
	}
	return 0
}

func runBatch(dir, outdir string, workers int, verbose bool) int {
	files, err := filehandler.FilesInDirectory(dir, []string{".jpg", ".jpeg"})
	if err != nil {
		fmt.Println(printError("[-] " + err.Error()))
		return 1
	}
	if len(files) == 0 {
		fmt.Println(printWarning("[*] no JPEG files found in " + dir))
		return 0
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan string)
	var wg sync.WaitGroup
	var mu sync.Mutex
	failures := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				if err := embedOne(path, outdir); err != nil {
					mu.Lock()
					failures++
					mu.Unlock()
					fmt.Println(printError(fmt.Sprintf("[-] %s: %v", path, err)))
					continue
				}
				if verbose {
					fmt.Println(printSuccess("[+] " + path))
				}
			}
		}()
	}
	for _, f := range files {
		jobs <- f
	}
	close(jobs)
	wg.Wait()

	fmt.Println(printInfo(fmt.Sprintf("[*] processed %d files, %d failures", len(files), failures)))
	if failures > 0 {
		return 1
	}
	return 0
}

func embedOne(path, outdir string) error {
	cover, err := filehandler.ReadFileBytes(path)
	if err != nil {
		return err
	}
	e, err := conceal.NewEmbedder(cover)
	if err != nil {
		return err
	}
	out, err := e.Write(referencePayload())
	if err != nil {
		return err
	}
	return filehandler.SaveFile(out, filepath.Join(outdir, filepath.Base(path)))
}

// selfCheckExit maps a CorrelationViolation error to the reference
// driver's distinguished exit codes 10/11, returning 0 for any other error
// (including nil) so the caller's normal error handling applies instead.
func selfCheckExit(err error) int {
	cerr, ok := err.(*conceal.Error)
	if !ok || cerr.Kind != conceal.CorrelationViolation {
		return 0
	}
	fmt.Println(printAlert(fmt.Sprintf("[!!!] correlation self-check failed: %v", cerr)))
	if cerr.SelfCheckCode != 0 {
		return cerr.SelfCheckCode
	}
	return 10
}

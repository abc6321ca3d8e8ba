// Command artdump decompresses and inspects Mischief `.art` files. Files
// may be local, on S3, or an HTTP(S) URL.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"

	"cloudeng.io/cmdutil"
	"cloudeng.io/cmdutil/subcmd"
	"cloudeng.io/errors"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/file/s3file"
	"github.com/schollz/progressbar/v2"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/inkstone-labs/mischiefart"
)

type catFlags struct{}

type unzipFlags struct {
	ProgressBar bool   `subcmd:"progress,true,display a progress bar"`
	OutputFile  string `subcmd:"output,,'output file or s3 path, omit for stdout'"`
}

type inspectFlags struct{}

type noFlags struct{}

var cmdSet *subcmd.CommandSet

func init() {
	catCmd := subcmd.NewCommand("cat",
		subcmd.MustRegisterFlagStruct(&catFlags{}, nil, nil),
		cat, subcmd.ExactlyNumArguments(1))
	catCmd.Document(`decompress an .art file to stdout.`)

	unzipCmd := subcmd.NewCommand("unzip",
		subcmd.MustRegisterFlagStruct(&unzipFlags{}, nil, nil),
		unzip, subcmd.ExactlyNumArguments(1))
	unzipCmd.Document(`decompress an .art file.`)

	inspectCmd := subcmd.NewCommand("inspect",
		subcmd.MustRegisterFlagStruct(&inspectFlags{}, nil, nil),
		inspect, subcmd.ExactlyNumArguments(1))
	inspectCmd.Document(`print container and payload metadata without writing decompressed output.`)

	scanCmd := subcmd.NewCommand("scan",
		subcmd.MustRegisterFlagStruct(&noFlags{}, nil, nil),
		scan, subcmd.AtLeastNArguments(1))
	scanCmd.Document(`validate many .art files, reporting every failure in one pass.`)

	cmdSet = subcmd.NewCommandSet(catCmd, unzipCmd, inspectCmd, scanCmd)
	cmdSet.Document(`decompress and inspect Mischief .art files. Files may be local, on S3 or a URL.`)

	file.RegisterImplementation("s3", func() file.Implementation {
		return s3file.NewImplementation(
			s3file.NewDefaultProvider(session.Options{}), s3file.Options{})
	})
}

func main() {
	cmdSet.MustDispatch(context.Background())
}

func openFileOrURL(ctx context.Context, name string) (io.Reader, int64, func(context.Context) error, error) {
	if strings.HasPrefix(name, "http") {
		resp, err := http.Get(name)
		if err != nil {
			return nil, 0, nil, err
		}
		return resp.Body,
			resp.ContentLength,
			func(context.Context) error {
				resp.Body.Close()
				return nil
			},
			nil
	}
	info, err := file.Stat(ctx, name)
	if err != nil {
		return nil, 0, nil, err
	}
	f, err := file.Open(ctx, name)
	if err != nil {
		return nil, 0, nil, err
	}
	return f.Reader(ctx), info.Size(), f.Close, nil
}

func createFile(ctx context.Context, name string) (io.Writer, func(context.Context) error, error) {
	if len(name) == 0 {
		return os.Stdout, func(context.Context) error { return nil }, nil
	}
	f, err := file.Create(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	return f.Writer(ctx), f.Close, nil
}

func cat(ctx context.Context, values interface{}, args []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	cmdutil.HandleSignals(cancel, os.Interrupt)

	rd, _, cleanup, err := openFileOrURL(ctx, args[0])
	if err != nil {
		return err
	}
	defer cleanup(ctx)

	out, _, err := artfile.Decode(rd)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

func progressBarFor(size int64, w io.Writer) *progressbar.ProgressBar {
	bar := progressbar.NewOptions64(size,
		progressbar.OptionSetBytes64(size),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetPredictTime(true))
	bar.RenderBlank()
	return bar
}

func unzip(ctx context.Context, values interface{}, args []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	cl := values.(*unzipFlags)
	cmdutil.HandleSignals(cancel, os.Interrupt)

	rd, _, readerCleanup, err := openFileOrURL(ctx, args[0])
	if err != nil {
		return err
	}
	defer readerCleanup(ctx)

	wr, writerCleanup, err := createFile(ctx, cl.OutputFile)
	if err != nil {
		return err
	}

	isTTY := terminal.IsTerminal(int(os.Stdout.Fd()))
	showBar := cl.ProgressBar && (len(cl.OutputFile) > 0 || !isTTY)

	errs := &errors.M{}
	out, md, err := artfile.Decode(rd)
	errs.Append(err)
	if err == nil {
		var bar *progressbar.ProgressBar
		if showBar {
			barWr := os.Stdout
			if !isTTY {
				barWr = os.Stderr
			}
			bar = progressBarFor(int64(md.UncompressedSize), barWr)
		}
		n, werr := wr.Write(out)
		errs.Append(werr)
		if bar != nil {
			bar.Add(n)
			fmt.Fprintln(os.Stdout)
		}
	}
	errs.Append(writerCleanup(ctx))
	return errs.Err()
}

func inspect(ctx context.Context, values interface{}, args []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	cmdutil.HandleSignals(cancel, os.Interrupt)

	rd, _, cleanup, err := openFileOrURL(ctx, args[0])
	if err != nil {
		return err
	}
	defer cleanup(ctx)

	md, err := artfile.DecodeMetadata(rd)
	if err != nil {
		return err
	}
	fmt.Printf("version: %s\n", md.Version)
	fmt.Printf("pinned: %v\n", md.Pinned)
	fmt.Printf("uncompressed size: %d\n", md.UncompressedSize)
	fmt.Printf("pens: %d\n", len(md.Pens))
	fmt.Printf("layers: %d\n", len(md.Layers))
	for _, p := range md.Pins {
		fmt.Printf("pin: (%d,%d) -> layer %d\n", p.X, p.Y, p.LayerIndex)
	}
	return nil
}

func scan(ctx context.Context, values interface{}, args []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	cmdutil.HandleSignals(cancel, os.Interrupt)

	errs := &errors.M{}
	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, name := range args {
		name := name
		wg.Add(1)
		go func() {
			defer wg.Done()
			rd, _, cleanup, err := openFileOrURL(ctx, name)
			if err != nil {
				mu.Lock()
				errs.Append(fmt.Errorf("%s: %w", name, err))
				mu.Unlock()
				return
			}
			defer cleanup(ctx)
			if _, _, err := artfile.DecodeBytes(mustReadAll(rd)); err != nil {
				mu.Lock()
				errs.Append(fmt.Errorf("%s: %w", name, err))
				mu.Unlock()
				return
			}
			log.Printf("%s: ok", name)
		}()
	}
	wg.Wait()
	return errs.Err()
}

func mustReadAll(r io.Reader) []byte {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil
	}
	return data
}

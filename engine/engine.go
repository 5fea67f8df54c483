package engine

import (
	"io"
	"os"
	"strconv"

	"huffman-engine/config"
	"huffman-engine/internal/code_tree"
	"huffman-engine/internal/codec"
	"huffman-engine/internal/disk/file_manager"
	"huffman-engine/pkg/logger"

	"github.com/pkg/errors"
)

type Engine struct {
	configuration *config.Config
	fileManager   *file_manager.Manager
	codec         *codec.Codec
	log           logger.Logger
}

func NewEngine(conf *config.Config, log logger.Logger) *Engine {
	for _, fix := range conf.Fixes() {
		log.Warnf("invalid configuration value, %s", fix)
	}
	return &Engine{
		configuration: conf,
		fileManager:   file_manager.NewManager(conf.FilesConfig),
		codec:         codec.NewCodec(conf.CodecConfig),
		log:           log,
	}
}

// Encode compresses path into a sibling file with the encoded extension and
// returns the name of that file.
func (e *Engine) Encode(path string) (string, *codec.Stats, error) {
	outputFilename, err := e.fileManager.EncodedName(path)
	if err != nil {
		return "", nil, err
	}

	input, size, err := e.fileManager.OpenInput(path)
	if err != nil {
		return "", nil, err
	}
	defer input.Close()
	if size == 0 {
		return "", nil, errors.Wrapf(codec.ErrEmptyInput, "%s", path)
	}

	log := logger.With(e.log, "file", path)
	log.Debugf("counting frequencies of %d bytes", size)
	analysis, err := e.codec.Analyze(input)
	if err != nil {
		return "", nil, err
	}
	if e.configuration.PrintFrequencies {
		e.printFrequencies(log, analysis.Frequencies)
	}
	if e.configuration.PrintCodes {
		e.printCodes(log, analysis.Codes)
	}

	_, err = input.Seek(0, io.SeekStart)
	if err != nil {
		return "", nil, errors.Wrapf(err, "rewind %s", path)
	}

	stats, err := e.writeOutput(outputFilename, func(output *os.File) (*codec.Stats, error) {
		return e.codec.EncodeWith(analysis, input, output)
	})
	if err != nil {
		return "", nil, err
	}

	log.Infof("encoded file is called %s", outputFilename)
	log.Infof("size of original file: %d bytes, compressed file: %d bytes, compression ratio: %.4f",
		stats.InputBytes, stats.OutputBytes, stats.Ratio())
	return outputFilename, stats, nil
}

// Decode restores an encoded file into a sibling file with the decoded
// suffix and returns the name of that file.
func (e *Engine) Decode(path string) (string, *codec.Stats, error) {
	outputFilename, err := e.fileManager.DecodedName(path)
	if err != nil {
		return "", nil, err
	}

	input, size, err := e.fileManager.OpenInput(path)
	if err != nil {
		return "", nil, err
	}
	defer input.Close()
	if size == 0 {
		return "", nil, errors.Wrapf(codec.ErrEmptyInput, "%s", path)
	}

	log := logger.With(e.log, "file", path)
	log.Debugf("beginning decoding process")

	stats, err := e.writeOutput(outputFilename, func(output *os.File) (*codec.Stats, error) {
		return e.codec.Decode(input, output)
	})
	if err != nil {
		return "", nil, err
	}

	decodedSize, err := e.fileManager.Size(outputFilename)
	if err != nil {
		return "", nil, err
	}

	log.Infof("decoded file is called %s", outputFilename)
	log.Infof("size of encoded file: %d bytes, decoded file: %d bytes", size, decodedSize)
	log.Debugf("%d symbols, %d tree bits, %d payload bits, %d padding bits",
		stats.Symbols, stats.TreeBits, stats.PayloadBits, stats.PaddingBits)
	return outputFilename, stats, nil
}

// writeOutput creates filename, runs write against it and removes the file
// again if anything fails, so no partial output is left behind.
func (e *Engine) writeOutput(filename string, write func(*os.File) (*codec.Stats, error)) (*codec.Stats, error) {
	output, err := e.fileManager.CreateFile(filename)
	if err != nil {
		return nil, err
	}

	stats, err := write(output)
	closeErr := output.Close()
	if err == nil && closeErr != nil {
		err = errors.Wrapf(closeErr, "close %s", filename)
	}
	if err != nil {
		removeErr := e.fileManager.RemoveFile(filename)
		if removeErr != nil {
			e.log.Errorf("%v", removeErr)
		}
		return nil, err
	}
	return stats, nil
}

func (e *Engine) printFrequencies(log logger.Logger, freqs *code_tree.FrequencyTable) {
	log.Infof("finished counting frequencies, %d distinct symbols", freqs.Distinct())
	for _, entry := range freqs.Entries() {
		log.Infof("%8s %10d", displaySymbol(entry.Symbol), entry.Frequency)
	}
}

func (e *Engine) printCodes(log logger.Logger, codes *code_tree.CodeTable) {
	log.Infof("prefix codes:")
	for sym := range codes {
		if !codes.Has(byte(sym)) {
			continue
		}
		log.Infof("%8s %s", displaySymbol(byte(sym)), codes[sym])
	}
}

func displaySymbol(symbol byte) string {
	quoted := strconv.QuoteToASCII(string([]byte{symbol}))
	return quoted[1 : len(quoted)-1]
}

package gotag

import (
	"bytes"
	"math"

	"github.com/simonhull/trackmeta/internal/binary"
	"github.com/simonhull/trackmeta/internal/types"
)

// container is the file layout detected from magic bytes.
type container int

const (
	containerUnknown container = iota
	containerFLAC
	containerMP3
	containerVorbis
	containerOpus
	containerMP4
	containerAIFF
	containerAPE
)

// properties holds the audio properties read from stream headers.
type properties struct {
	fileType   types.TrackFileType
	durationMS int64
	bitrate    int32 // kbps
	sampleRate int32
}

// detect determines the container by examining magic bytes.
//
// Detection is based on file signatures at the beginning of the file and
// does not validate the whole structure.
func detect(sr *binary.SafeReader) container { //nolint:gocyclo // Format detection requires checking multiple magic byte patterns
	// File must be at least 4 bytes for any meaningful detection
	if sr.Size() < 4 {
		return containerUnknown
	}

	magic, err := sr.Bytes(0, 4, "file magic bytes")
	if err != nil {
		return containerUnknown
	}

	switch {
	case string(magic) == "fLaC":
		return containerFLAC
	case string(magic[:3]) == "ID3":
		return containerMP3
	case magic[0] == 0xFF && (magic[1]&0xE0) == 0xE0:
		// MP3 frame sync without an ID3 tag
		return containerMP3
	case string(magic) == "MAC ":
		return containerAPE
	case string(magic) == "OggS":
		// The codec magic sits in the first packet, after the 27 byte page
		// header and the segment table.
		segCount, err := sr.Uint8(26, "segment count")
		if err != nil {
			return containerUnknown
		}
		packet := int64(27 + int(segCount))
		if sr.Magic(packet, "OpusHead") {
			return containerOpus
		}
		if sr.Magic(packet, "\x01vorbis") {
			return containerVorbis
		}
		return containerUnknown
	case string(magic) == "FORM":
		if sr.Magic(8, "AIFF") || sr.Magic(8, "AIFC") {
			return containerAIFF
		}
		return containerUnknown
	}

	// ftyp atom must be at least 16 bytes (size + type + brand + version)
	atomSize, err := sr.Uint32BE(0, "ftyp atom size")
	if err != nil || atomSize < 16 || !sr.Magic(4, "ftyp") {
		return containerUnknown
	}
	for _, brand := range []string{"M4A ", "M4B ", "mp42", "isom", "dash"} {
		if sr.Magic(8, brand) {
			return containerMP4
		}
	}
	return containerUnknown
}

// probe reads audio properties for the detected container. A header that
// cannot be parsed leaves the numeric properties at zero but keeps the
// family type, the way a tolerant native parser does.
func probe(sr *binary.SafeReader, c container) properties {
	var p properties
	var err error

	switch c {
	case containerFLAC:
		p, err = probeFLAC(sr)
		if err != nil {
			p.fileType = types.TrackFileTypeFLAC
		}
	case containerMP3:
		p, err = probeMP3(sr)
		if err != nil {
			p.fileType = types.TrackFileTypeMP3CBR
		}
	case containerVorbis:
		p, _ = probeOgg(sr, false)
		p.fileType = types.TrackFileTypeVorbis
	case containerOpus:
		p, _ = probeOgg(sr, true)
		p.fileType = types.TrackFileTypeOpus
	case containerMP4:
		p, err = probeMP4(sr)
		if err != nil {
			p.fileType = types.TrackFileTypeAAC
		}
	case containerAIFF:
		p, err = probeAIFF(sr)
		if err != nil {
			p.fileType = types.TrackFileTypeAIFF
		}
	case containerAPE:
		p, err = probeAPE(sr)
		if err != nil {
			p.fileType = types.TrackFileTypeMonkeysAudio
		}
	}
	return p
}

// averageBitrate returns kbps for n bytes played over ms milliseconds.
func averageBitrate(n, ms int64) int32 {
	if ms <= 0 || n <= 0 {
		return 0
	}
	return int32(n * 8 / ms)
}

func samplesToMS(samples uint64, rate uint32) int64 {
	if rate == 0 {
		return 0
	}
	return int64(samples * 1000 / uint64(rate))
}

// probeFLAC parses the STREAMINFO block, which must be the first metadata
// block.
func probeFLAC(sr *binary.SafeReader) (properties, error) {
	// STREAMINFO is exactly 34 bytes, after the 4 byte marker and a 4 byte
	// block header.
	data, err := sr.Bytes(8, 34, "STREAMINFO block")
	if err != nil {
		return properties{}, err
	}

	// Bytes 10-17: Sample rate (20 bits), channels (3 bits), bits per sample (5 bits), total samples (36 bits)
	// This is a bit-packed 64-bit value
	packed := uint64(data[10])<<56 | uint64(data[11])<<48 | uint64(data[12])<<40 | uint64(data[13])<<32 |
		uint64(data[14])<<24 | uint64(data[15])<<16 | uint64(data[16])<<8 | uint64(data[17])

	sampleRate := uint32((packed >> 44) & 0xFFFFF)
	bitsPerSample := int((packed>>36)&0x1F) + 1
	totalSamples := packed & 0xFFFFFFFFF

	ms := samplesToMS(totalSamples, sampleRate)
	return properties{
		fileType:   types.FLACForBitDepth(bitsPerSample),
		durationMS: ms,
		bitrate:    averageBitrate(sr.Size(), ms),
		sampleRate: int32(sampleRate),
	}, nil
}

var (
	mp3BitratesV1 = [16]int32{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0}
	mp3BitratesV2 = [16]int32{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0}
	mp3RatesV1    = [4]int32{44100, 48000, 32000, 0}
)

type mp3Frame struct {
	offset          int64
	bitrate         int32
	sampleRate      int32
	samplesPerFrame int
	mpeg1           bool
	mono            bool
}

func parseMP3Header(h uint32) (mp3Frame, bool) {
	if h>>21 != 0x7FF {
		return mp3Frame{}, false
	}
	version := (h >> 19) & 3 // 0: MPEG 2.5, 2: MPEG 2, 3: MPEG 1
	layer := (h >> 17) & 3   // 1: Layer III
	bitrateIdx := (h >> 12) & 0xF
	rateIdx := (h >> 10) & 3
	if version == 1 || layer != 1 || bitrateIdx == 0 || bitrateIdx == 15 || rateIdx == 3 {
		return mp3Frame{}, false
	}

	f := mp3Frame{mono: (h>>6)&3 == 3}
	rate := mp3RatesV1[rateIdx]
	switch version {
	case 3:
		f.mpeg1 = true
		f.bitrate = mp3BitratesV1[bitrateIdx]
		f.samplesPerFrame = 1152
	case 2:
		rate /= 2
		f.bitrate = mp3BitratesV2[bitrateIdx]
		f.samplesPerFrame = 576
	default:
		rate /= 4
		f.bitrate = mp3BitratesV2[bitrateIdx]
		f.samplesPerFrame = 576
	}
	f.sampleRate = rate
	return f, true
}

// id3v2Size returns the total length of a leading ID3v2 tag, or 0.
func id3v2Size(sr *binary.SafeReader) int64 {
	if !sr.Magic(0, "ID3") {
		return 0
	}
	hdr, err := sr.Bytes(6, 4, "ID3v2 size")
	if err != nil {
		return 0
	}
	// Sync-safe integer: 7 bits per byte
	size := int64(hdr[0]&0x7F)<<21 | int64(hdr[1]&0x7F)<<14 | int64(hdr[2]&0x7F)<<7 | int64(hdr[3]&0x7F)
	return 10 + size
}

const mp3SyncWindow = 64 << 10

func probeMP3(sr *binary.SafeReader) (properties, error) {
	start := id3v2Size(sr)
	end := min(sr.Size(), start+mp3SyncWindow)
	if start >= end {
		return properties{}, errNoFrame
	}
	window, err := sr.Bytes(start, int(end-start), "MPEG frame search")
	if err != nil {
		return properties{}, err
	}

	var frame mp3Frame
	found := false
	for i := 0; i+4 <= len(window); i++ {
		if window[i] != 0xFF {
			continue
		}
		h := uint32(window[i])<<24 | uint32(window[i+1])<<16 | uint32(window[i+2])<<8 | uint32(window[i+3])
		if f, ok := parseMP3Header(h); ok {
			frame, found = f, true
			frame.offset = start + int64(i)
			break
		}
	}
	if !found {
		return properties{}, errNoFrame
	}

	audioBytes := sr.Size() - frame.offset
	p := properties{
		fileType:   types.TrackFileTypeMP3CBR,
		sampleRate: frame.sampleRate,
		bitrate:    frame.bitrate,
	}
	if frame.bitrate > 0 {
		p.durationMS = audioBytes * 8 / int64(frame.bitrate)
	}

	// A Xing or VBRI header in the first frame marks a VBR stream and
	// carries the frame count.
	if frames, ok := vbrFrameCount(sr, frame); ok {
		p.fileType = types.TrackFileTypeMP3VBR
		if frames > 0 && frame.sampleRate > 0 {
			p.durationMS = int64(frames) * int64(frame.samplesPerFrame) * 1000 / int64(frame.sampleRate)
			p.bitrate = averageBitrate(audioBytes, p.durationMS)
		}
	}
	return p, nil
}

func vbrFrameCount(sr *binary.SafeReader, f mp3Frame) (uint32, bool) {
	// Xing sits after the side information, whose size depends on the
	// MPEG version and channel mode.
	var side int64
	switch {
	case f.mpeg1 && !f.mono:
		side = 32
	case f.mpeg1 || !f.mono:
		side = 17
	default:
		side = 9
	}
	xing := f.offset + 4 + side
	if sr.Magic(xing, "Xing") {
		flags, err := sr.Uint32BE(xing+4, "Xing flags")
		if err != nil {
			return 0, true
		}
		if flags&1 == 0 {
			return 0, true
		}
		frames, err := sr.Uint32BE(xing+8, "Xing frame count")
		if err != nil {
			return 0, true
		}
		return frames, true
	}

	// VBRI is always 32 bytes after the frame header.
	vbri := f.offset + 4 + 32
	if sr.Magic(vbri, "VBRI") {
		frames, err := sr.Uint32BE(vbri+14, "VBRI frame count")
		if err != nil {
			return 0, true
		}
		return frames, true
	}
	return 0, false
}

const oggTailWindow = 64 << 10

// probeOgg reads the identification header and the granule position of
// the last page.
func probeOgg(sr *binary.SafeReader, opus bool) (properties, error) {
	segCount, err := sr.Uint8(26, "segment count")
	if err != nil {
		return properties{}, err
	}
	packet := int64(27 + int(segCount))

	var (
		rate    uint32
		preSkip uint64
		nominal int32
	)
	if opus {
		// OpusHead: version(1) channels(1) pre-skip(2) input rate(4).
		// Opus always decodes at 48 kHz.
		skip, err := sr.Uint16LE(packet+10, "Opus pre-skip")
		if err != nil {
			return properties{}, err
		}
		preSkip = uint64(skip)
		rate = 48000
	} else {
		// \x01vorbis: version(4) channels(1) rate(4) max(4) nominal(4) min(4)
		rate, err = sr.Uint32LE(packet+12, "Vorbis sample rate")
		if err != nil {
			return properties{}, err
		}
		br, err := sr.Uint32LE(packet+20, "Vorbis nominal bitrate")
		if err == nil && int32(br) > 0 {
			nominal = int32(br) / 1000
		}
	}

	p := properties{sampleRate: int32(rate), bitrate: nominal}

	tailStart := max(0, sr.Size()-oggTailWindow)
	tail, err := sr.Bytes(tailStart, int(sr.Size()-tailStart), "last Ogg page")
	if err != nil {
		return p, err
	}
	idx := bytes.LastIndex(tail, []byte("OggS"))
	if idx < 0 {
		return p, errNoPage
	}
	granule, err := sr.Uint64LE(tailStart+int64(idx)+6, "granule position")
	if err != nil {
		return p, err
	}
	if granule > preSkip && granule != math.MaxUint64 {
		p.durationMS = samplesToMS(granule-preSkip, rate)
	}
	if p.bitrate == 0 {
		p.bitrate = averageBitrate(sr.Size(), p.durationMS)
	}
	return p, nil
}

// findAtom returns the payload bounds of the first child atom named name
// within [start, end).
func findAtom(sr *binary.SafeReader, start, end int64, name string) (int64, int64, bool) {
	off := start
	for off+8 <= end {
		size32, err := sr.Uint32BE(off, "atom size")
		if err != nil {
			return 0, 0, false
		}
		header := int64(8)
		size := int64(size32)
		switch size32 {
		case 0:
			size = end - off
		case 1:
			ext, err := sr.Uint64BE(off+8, "extended atom size")
			if err != nil {
				return 0, 0, false
			}
			size = int64(ext)
			header = 16
		}
		if size < header || off+size > end {
			return 0, 0, false
		}
		if sr.Magic(off+4, name) {
			return off + header, off + size, true
		}
		off += size
	}
	return 0, 0, false
}

func findAtomPath(sr *binary.SafeReader, path ...string) (int64, int64, bool) {
	start, end := int64(0), sr.Size()
	for _, name := range path {
		var ok bool
		start, end, ok = findAtom(sr, start, end, name)
		if !ok {
			return 0, 0, false
		}
	}
	return start, end, true
}

// probeMP4 reads the first track's media header and sample description.
func probeMP4(sr *binary.SafeReader) (properties, error) {
	p := properties{fileType: types.TrackFileTypeAAC}

	mdhd, _, ok := findAtomPath(sr, "moov", "trak", "mdia", "mdhd")
	if !ok {
		return p, errNoAtom
	}
	version, err := sr.Uint8(mdhd, "mdhd version")
	if err != nil {
		return p, err
	}
	var timescale uint32
	var duration uint64
	if version == 1 {
		timescale, err = sr.Uint32BE(mdhd+20, "mdhd timescale")
		if err == nil {
			duration, err = sr.Uint64BE(mdhd+24, "mdhd duration")
		}
	} else {
		timescale, err = sr.Uint32BE(mdhd+12, "mdhd timescale")
		if err == nil {
			var d uint32
			d, err = sr.Uint32BE(mdhd+16, "mdhd duration")
			duration = uint64(d)
		}
	}
	if err != nil {
		return p, err
	}
	p.durationMS = samplesToMS(duration, timescale)
	p.sampleRate = int32(timescale)
	p.bitrate = averageBitrate(sr.Size(), p.durationMS)

	// stsd payload: version/flags(4) entry count(4), then sample entries.
	stsd, _, ok := findAtomPath(sr, "moov", "trak", "mdia", "minf", "stbl", "stsd")
	if !ok {
		return p, nil
	}
	entry := stsd + 8
	if sr.Magic(entry+4, "alac") {
		bits, err := sr.Uint16BE(entry+26, "ALAC sample size")
		if err != nil {
			bits = 0
		}
		p.fileType = types.ALACForBitDepth(int(bits))
	}
	if rate, err := sr.Uint32BE(entry+32, "sample rate"); err == nil && rate>>16 > 0 {
		p.sampleRate = int32(rate >> 16)
	}
	return p, nil
}

// extendedFloat decodes an 80-bit IEEE 754 extended precision value.
func extendedFloat(b []byte) float64 {
	exp := int(uint16(b[0]&0x7F)<<8 | uint16(b[1]))
	var mant uint64
	for _, c := range b[2:10] {
		mant = mant<<8 | uint64(c)
	}
	if exp == 0 && mant == 0 {
		return 0
	}
	v := math.Ldexp(float64(mant), exp-16383-63)
	if b[0]&0x80 != 0 {
		v = -v
	}
	return v
}

// probeAIFF walks the chunks after the FORM header looking for COMM.
func probeAIFF(sr *binary.SafeReader) (properties, error) {
	off := int64(12)
	for off+8 <= sr.Size() {
		size, err := sr.Uint32BE(off+4, "chunk size")
		if err != nil {
			return properties{}, err
		}
		if sr.Magic(off, "COMM") {
			// channels(2) frames(4) sample size(2) rate(10)
			comm, err := sr.Bytes(off+8, 18, "COMM chunk")
			if err != nil {
				return properties{}, err
			}
			frames := uint64(comm[2])<<24 | uint64(comm[3])<<16 | uint64(comm[4])<<8 | uint64(comm[5])
			bits := int(comm[6])<<8 | int(comm[7])
			rate := uint32(extendedFloat(comm[8:18]))
			ms := samplesToMS(frames, rate)
			return properties{
				fileType:   types.AIFFForBitDepth(bits),
				durationMS: ms,
				bitrate:    averageBitrate(sr.Size(), ms),
				sampleRate: int32(rate),
			}, nil
		}
		// Chunks are padded to an even length
		off += 8 + int64(size) + int64(size&1)
	}
	return properties{}, errNoChunk
}

// probeAPE reads the header of a Monkey's Audio file version 3.98 or later.
func probeAPE(sr *binary.SafeReader) (properties, error) {
	version, err := sr.Uint16LE(4, "APE version")
	if err != nil {
		return properties{}, err
	}
	if version < 3980 {
		return properties{}, errOldAPE
	}
	descriptor, err := sr.Uint32LE(8, "APE descriptor length")
	if err != nil {
		return properties{}, err
	}
	// compression(2) flags(2) blocks per frame(4) final frame blocks(4)
	// total frames(4) bits(2) channels(2) rate(4)
	hdr := int64(descriptor)
	blocksPerFrame, err := sr.Uint32LE(hdr+4, "APE blocks per frame")
	if err != nil {
		return properties{}, err
	}
	finalBlocks, err := sr.Uint32LE(hdr+8, "APE final frame blocks")
	if err != nil {
		return properties{}, err
	}
	totalFrames, err := sr.Uint32LE(hdr+12, "APE total frames")
	if err != nil {
		return properties{}, err
	}
	bits, err := sr.Uint16LE(hdr+16, "APE bits per sample")
	if err != nil {
		return properties{}, err
	}
	rate, err := sr.Uint32LE(hdr+20, "APE sample rate")
	if err != nil {
		return properties{}, err
	}

	var samples uint64
	if totalFrames > 0 {
		samples = uint64(totalFrames-1)*uint64(blocksPerFrame) + uint64(finalBlocks)
	}
	ms := samplesToMS(samples, rate)
	return properties{
		fileType:   types.MonkeysAudioForBitDepth(int(bits)),
		durationMS: ms,
		bitrate:    averageBitrate(sr.Size(), ms),
		sampleRate: int32(rate),
	}, nil
}

package ffmpeg

// BuildMergeArgs constructs the complete ffmpeg argument slice for a concat
// merge: concat demuxer reading the manifest, stream copy (no re-encode),
// forced overwrite of the destination. -safe 0 permits the absolute paths
// the manifest contains.
func BuildMergeArgs(binary, manifestPath, outputPath string) []string {
	return []string{
		binary,
		"-hide_banner", "-nostdin",
		"-loglevel", "error",
		"-f", "concat",
		"-safe", "0",
		"-i", manifestPath,
		"-c", "copy",
		"-y",
		outputPath,
	}
}

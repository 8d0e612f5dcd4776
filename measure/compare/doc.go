// Package compare validates a designed filter against the native engine.
//
// [Engine] builds and runs the engine through its file contract
// (<binary> -i <in> -o <out> -f <family> -s <mode>), [ReadOutput] reads
// what it wrote, and [Compare] puts the original, locally filtered and
// natively filtered signals side by side in the frequency domain.
// [WriteReport] stores the spectra as a Parquet table for plotting.
package compare

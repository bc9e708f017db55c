// Package worker includes the jobs of the signing tool.
//
// It contains the following job:
//	sign
//		watch a directory for pending transaction files, sign them with the
//		configured keys, keep the fully signed ones in the transaction store
//		and write the result next to the pending file.
package worker

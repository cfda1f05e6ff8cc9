/*
Copyright © 2018 the txblend authors.
This file is part of txblend.

txblend is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

txblend is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with txblend.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package txblend reads and writes the fixed-format text files used by the
// TxBLEND hydrodynamic model of the Texas coastal bays.
//
// TxBLEND predates self-describing file formats: its inputs and outputs are
// fixed-column text, often with one logical record spread over several
// physical lines. Each reader in this package reassembles one such format
// into a chronologically ordered time series; the writers perform the
// inverse transformation back into the model's fixed-column layout.
//
// All functions operate on whole files. A file is fully consumed before any
// result is returned, and any malformed line aborts the call with an error
// identifying the file and line; no partial results are produced.
package txblend
